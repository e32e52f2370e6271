package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tranvk/selfheal/internal/control"
	"github.com/tranvk/selfheal/internal/core/domain"
	"github.com/tranvk/selfheal/internal/sim/loop"
)

var (
	runModule      string
	runTarget      int
	runMaxFailures int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single resilience loop",
	Long: `Run drives one resilience loop until the configured number of
consecutive successful runs is reached, or until the consecutive-failure
threshold aborts it. Without --module the whole-system (general) scope runs.`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runModule, "module", "", "module to test (default: general scope)")
	runCmd.Flags().IntVar(&runTarget, "target", -1, "consecutive successes required (default: from config)")
	runCmd.Flags().IntVar(&runMaxFailures, "max-failures", -1, "consecutive-failure abort threshold (default: from config)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	target := cfg.Loop.TargetSuccesses
	if cmd.Flags().Changed("target") {
		target = runTarget
	}
	maxFailures := cfg.Loop.MaxConsecutiveFailures
	if cmd.Flags().Changed("max-failures") {
		maxFailures = runMaxFailures
	}

	runner, err := control.NewRunner(cfg)
	if err != nil {
		slog.Error("Failed to initialize runner", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner.Start()

	module := domain.Normalize(runModule)
	result, runErr := runner.RunOnce(ctx, module, target, maxFailures)

	if err := runner.Stop(context.Background()); err != nil {
		slog.Error("Failed to persist final statistics", "error", err, "path", cfg.Stats.Path)
	}

	if runErr != nil {
		slog.Error("Loop interrupted", "error", runErr)
		os.Exit(1)
	}
	if result.Status == loop.StatusAborted {
		os.Exit(1)
	}
}
