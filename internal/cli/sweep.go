package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tranvk/selfheal/internal/control"
)

var (
	sweepFull         bool
	sweepModuleTarget int
	sweepSystemTarget int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Test every module, then the whole system",
	Long: `Sweep runs a resilience loop for each subsystem module in turn, then a
general whole-system loop, then the AI-analysis pass. The demo-scale targets
apply unless --full selects the production-scale ones.`,
	Run: runSweep,
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepFull, "full", false, "use production-scale targets")
	sweepCmd.Flags().IntVar(&sweepModuleTarget, "module-target", 0, "override consecutive successes per module")
	sweepCmd.Flags().IntVar(&sweepSystemTarget, "system-target", 0, "override consecutive successes for the general sweep")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if cmd.Flags().Changed("module-target") {
		cfg.Sweep.ModuleTarget = sweepModuleTarget
		cfg.Sweep.FullModuleTarget = sweepModuleTarget
	}
	if cmd.Flags().Changed("system-target") {
		cfg.Sweep.SystemTarget = sweepSystemTarget
		cfg.Sweep.FullSystemTarget = sweepSystemTarget
	}

	runner, err := control.NewRunner(cfg)
	if err != nil {
		slog.Error("Failed to initialize runner", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner.Start()

	result, sweepErr := runner.RunSweep(ctx, sweepFull)

	if err := runner.Stop(context.Background()); err != nil {
		slog.Error("Failed to persist final statistics", "error", err, "path", cfg.Stats.Path)
	}

	if sweepErr != nil {
		slog.Error("Sweep interrupted", "error", sweepErr)
		os.Exit(1)
	}
	if result.Failed() {
		slog.Error("Sweep finished with aborted phases", "aborted", result.Aborted)
		os.Exit(1)
	}
	slog.Info("Sweep finished",
		"modules", len(result.Modules),
		"optimizations", len(result.Optimizations),
		"stats", cfg.Stats.Path)
}
