package config

import "fmt"

// Validate checks a configuration for invalid values. It is called after
// defaults and environment overrides are applied.
func Validate(cfg *Config) error {
	if cfg.Spec.Path == "" {
		return fmt.Errorf("spec.path must not be empty")
	}

	if cfg.Probes.Concurrency < 1 {
		return fmt.Errorf("probes.concurrency must be at least 1, got %d", cfg.Probes.Concurrency)
	}
	if cfg.Probes.DefaultTimeout <= 0 {
		return fmt.Errorf("probes.default_timeout must be positive, got %s", cfg.Probes.DefaultTimeout)
	}

	switch cfg.Report.Storage {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("report.storage must be %q or %q, got %q", "memory", "sqlite", cfg.Report.Storage)
	}
	if cfg.Report.Storage == "sqlite" && cfg.Report.Path == "" {
		return fmt.Errorf("report.path must be set when report.storage is sqlite")
	}
	if cfg.Report.Retention.MaxRuns < 0 {
		return fmt.Errorf("report.retention.max_runs must not be negative, got %d", cfg.Report.Retention.MaxRuns)
	}
	if cfg.Report.Retention.MaxAge < 0 {
		return fmt.Errorf("report.retention.max_age must not be negative, got %s", cfg.Report.Retention.MaxAge)
	}

	if cfg.LLM.Cache.Enabled && cfg.LLM.Cache.Path == "" {
		return fmt.Errorf("llm.cache.path must be set when the cache is enabled")
	}
	if cfg.LLM.Cache.TTL < 0 {
		return fmt.Errorf("llm.cache.ttl must not be negative, got %s", cfg.LLM.Cache.TTL)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", "text", "json", cfg.Logging.Format)
	}

	return nil
}
