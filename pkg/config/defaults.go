package config

import "time"

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Spec.Path == "" {
		cfg.Spec.Path = "attest.toml"
	}

	if cfg.Probes.Concurrency == 0 {
		cfg.Probes.Concurrency = 4
	}
	if cfg.Probes.DefaultTimeout == 0 {
		cfg.Probes.DefaultTimeout = 60 * time.Second
	}

	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "http://localhost:11434/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.Cache.Path == "" {
		cfg.LLM.Cache.Path = ".attest/llm-cache.db"
	}
	if cfg.LLM.Cache.TTL == 0 {
		cfg.LLM.Cache.TTL = 24 * time.Hour
	}

	if cfg.Report.Storage == "" {
		cfg.Report.Storage = "memory"
	}
	if cfg.Report.Path == "" {
		cfg.Report.Path = ".attest/runs.db"
	}
	if cfg.Report.Retention.Schedule == "" {
		// Daily at 03:00.
		cfg.Report.Retention.Schedule = "0 3 * * *"
	}
	if cfg.Report.Retention.MaxAge == 0 {
		cfg.Report.Retention.MaxAge = 30 * 24 * time.Hour
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "attest"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
