package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Default builds the built-in configuration used when no file is given.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file. Environment variables in the
// file content are expanded before parsing. The file is unmarshalled over the
// defaults, so keys absent from the file keep their default values while
// explicit values, including zeros, are honored.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Loop.TargetSuccesses == 0 {
		cfg.Loop.TargetSuccesses = 1000
	}
	if cfg.Loop.MaxConsecutiveFailures == 0 {
		cfg.Loop.MaxConsecutiveFailures = 100
	}
	if cfg.Loop.IterationDelay == 0 {
		cfg.Loop.IterationDelay = 100 * time.Millisecond
	}

	if cfg.Sweep.ModuleTarget == 0 {
		cfg.Sweep.ModuleTarget = 20
	}
	if cfg.Sweep.SystemTarget == 0 {
		cfg.Sweep.SystemTarget = 50
	}
	if cfg.Sweep.FullModuleTarget == 0 {
		cfg.Sweep.FullModuleTarget = 1000
	}
	if cfg.Sweep.FullSystemTarget == 0 {
		cfg.Sweep.FullSystemTarget = 100000
	}
	if cfg.Sweep.Optimizations == 0 {
		cfg.Sweep.Optimizations = 3
	}

	if cfg.Corrector.KnownFixRate == 0 {
		cfg.Corrector.KnownFixRate = 0.95
	}
	if cfg.Corrector.FallbackFixRate == 0 {
		cfg.Corrector.FallbackFixRate = 0.5
	}
	if cfg.Corrector.FixDelay == 0 {
		cfg.Corrector.FixDelay = 500 * time.Millisecond
	}

	if cfg.Stats.Path == "" {
		cfg.Stats.Path = "statistics.json"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
