// Package config defines service configuration structures and loading.
//
// Conventions follow the rest of the codebase: defaults come from New,
// Load layers an optional YAML file and environment variables on top, and
// external errors are wrapped via this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Dataset optionally points at a YAML dataset to preload into the
	// in-memory source on startup.
	Dataset string `koanf:"dataset"`

	// RecomputeOnStart runs a full recomputation after startup so every
	// active researcher has a score record before traffic arrives.
	RecomputeOnStart bool `koanf:"recompute_on_start"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		RecomputeOnStart: true,
	}
}
