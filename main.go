package main

import (
	"os"

	"github.com/raidsync/go-raid-sync/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
