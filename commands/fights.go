package commands

import (
	"github.com/spf13/cobra"
)

// fightsCmd is the explicit form of the default root behaviour
var fightsCmd = &cobra.Command{
	Use:   "fights <report-code>",
	Short: "List a report's boss fights",
	Long: `Fetches a report and prints its boss fights with start, end, duration
and kill/wipe result. Trash intervals are never shown.`,
	Args: cobra.ExactArgs(1),
	RunE: runFights,
}

func init() {
	rootCmd.AddCommand(fightsCmd)

	fightsCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	fightsCmd.Flags().StringVar(&sortBy, "sort", "time",
		"Sort fights by field (time, duration, name)")
	fightsCmd.Flags().BoolVar(&sortDesc, "desc", false,
		"Sort in descending order")
}
