package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raidsync/go-raid-sync/internal/data/fetcher"
	"github.com/raidsync/go-raid-sync/internal/presentation/formatter"
	"github.com/raidsync/go-raid-sync/internal/presentation/interaction"
	"github.com/raidsync/go-raid-sync/internal/util"
)

var (
	// Logging related
	debug    bool
	logLevel string
	logFile  string

	// Service endpoints
	apiBaseURL   string
	assetBaseURL string
	apiKey       string

	// Output related
	outputFormat string
	sortBy       string
	sortDesc     bool

	rootCmd = &cobra.Command{
		Use:   "go-raid-sync <report-code>",
		Short: "Combat log timeline tool",
		Long: `go-raid-sync aligns a combat-log report with a raid video recording.

Without a subcommand it lists the report's boss fights.

Examples:
  go-raid-sync a1b2c3d4                          # List fights of a report
  go-raid-sync a1b2c3d4 --output json            # Fight list as JSON
  go-raid-sync a1b2c3d4 --sort duration --desc   # Longest pulls first
  go-raid-sync sync a1b2c3d4 --video dQw4w9W     # Interactive alignment`,
		Args: cobra.ExactArgs(1),
		RunE: runFights,
	}
)

const (
	defaultLogFile      = "~/.go-raid-sync/logs/app.log"
	defaultAPIBaseURL   = "https://www.fflogs.com/v1"
	defaultAssetBaseURL = "https://assets.rpglogs.com/img/warcraft"
)

func init() {
	// Service configuration
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", defaultAPIBaseURL,
		"Combat-log API base URL")
	rootCmd.PersistentFlags().StringVar(&assetBaseURL, "asset-url", defaultAssetBaseURL,
		"CDN root for boss icons")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "",
		"API key (may also be set via RAID_SYNC_API_KEY)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.Flags().StringVar(&sortBy, "sort", "time",
		"Sort fights by field (time, duration, name)")
	rootCmd.Flags().BoolVar(&sortDesc, "desc", false,
		"Sort in descending order")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")
}

func runFights(cmd *cobra.Command, args []string) error {
	initLogging()

	field, ok := interaction.ParseSortField(sortBy)
	if !ok {
		return fmt.Errorf("invalid sort field '%s': must be time, duration or name", sortBy)
	}
	out, err := formatter.ForOutput(outputFormat)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := fetcher.NewClient(apiBaseURL, assetBaseURL, resolveAPIKey())
	report, err := client.FetchReport(ctx, args[0])
	if err != nil {
		return err
	}

	sorter := interaction.NewFightSorter()
	sorter.SetField(field)
	if sortDesc {
		sorter.SetOrder(interaction.SortDescending)
	}
	sorter.Sort(report.Fights)

	return out.Format(formatter.NewReportView(report))
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func initLogging() {
	level := logLevel
	if debug {
		level = "debug"
	}
	path := expandPath(logFile)
	ensureDir(filepath.Dir(path))
	util.InitLogger(level, path, debug)
}

func resolveAPIKey() string {
	if apiKey != "" {
		return apiKey
	}
	return os.Getenv("RAID_SYNC_API_KEY")
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
