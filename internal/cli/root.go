package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/tranvk/selfheal/internal/core/config"
)

var (
	cfgPath string
	isDebug bool
	serve   bool
)

var rootCmd = &cobra.Command{
	Use:   "selfheal",
	Short: "Self-healing resilience simulator",
	Long: `selfheal runs a fault-injecting execution loop against simulated
subsystem modules, applies corrective actions on failures, and records
statistics until a target of consecutive successful runs is reached.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&serve, "serve", false, "expose /health, /stats and /metrics while running")
}

// loadConfig reads the config file (or the built-in defaults) and initializes
// logging from it.
func loadConfig() *config.AppConfig {
	_ = godotenv.Load()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			initLogging("info")
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	level := cfg.Logging.Level
	if isDebug {
		level = "debug"
	}
	initLogging(level)

	if !serve {
		cfg.Server.Port = 0
	} else if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	return cfg
}

func initLogging(level string) {
	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})))
}
