package config

import (
	"time"

	"github.com/tranvk/selfheal/internal/core/domain"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Loop      LoopConfig      `yaml:"loop"`
	Sweep     SweepConfig     `yaml:"sweep"`
	Corrector CorrectorConfig `yaml:"corrector"`
	Stats     StatsConfig     `yaml:"stats"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Modules   []ModuleConfig  `yaml:"modules"`
}

// LoopConfig holds resilience-loop settings for single runs.
type LoopConfig struct {
	TargetSuccesses        int           `yaml:"target_successes"`
	MaxConsecutiveFailures int           `yaml:"max_consecutive_failures"`
	IterationDelay         time.Duration `yaml:"iteration_delay"`
}

// SweepConfig holds the per-phase targets of a full sweep. The demo targets
// run by default; Full* apply with --full.
type SweepConfig struct {
	ModuleTarget     int `yaml:"module_target"`
	SystemTarget     int `yaml:"system_target"`
	FullModuleTarget int `yaml:"full_module_target"`
	FullSystemTarget int `yaml:"full_system_target"`
	Optimizations    int `yaml:"optimizations"`
}

// CorrectorConfig holds remediation settings.
type CorrectorConfig struct {
	KnownFixRate    float64       `yaml:"known_fix_rate"`
	FallbackFixRate float64       `yaml:"fallback_fix_rate"`
	FixDelay        time.Duration `yaml:"fix_delay"`
}

// StatsConfig holds statistics persistence settings.
type StatsConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds the opt-in health/metrics listener settings.
// A zero port leaves the listener disabled.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ModuleConfig overrides the fault profile of one module.
type ModuleConfig struct {
	Name        string   `yaml:"name"`
	FailureRate float64  `yaml:"failure_rate"`
	ErrorKinds  []string `yaml:"error_kinds"`
}

// Module returns the normalized module identity of the override.
func (m ModuleConfig) Module() domain.Module {
	return domain.Normalize(m.Name)
}
