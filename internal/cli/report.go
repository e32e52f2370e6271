package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tranvk/selfheal/internal/report"
	"github.com/tranvk/selfheal/internal/stats"
)

var reportStatsPath string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render persisted statistics as tables",
	Run:   runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportStatsPath, "stats", "", "statistics file (default: from config)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	path := cfg.Stats.Path
	if reportStatsPath != "" {
		path = reportStatsPath
	}

	snapshot, err := stats.Load(path)
	if err != nil {
		slog.Error("Failed to load statistics", "error", err, "path", path)
		os.Exit(1)
	}

	if err := report.Render(os.Stdout, snapshot); err != nil {
		slog.Error("Failed to render report", "error", err)
		os.Exit(1)
	}
}
