package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults and
// ATTEST_* environment overrides, and validates the result. A missing file
// is not an error: defaults plus environment overrides are used instead.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies ATTEST_SECTION_FIELD environment variables on
// top of the loaded configuration.
func applyEnvOverrides(cfg *Config) {
	setString := func(key string, dst *string) {
		if val := os.Getenv(key); val != "" {
			*dst = val
		}
	}
	setBool := func(key string, dst *bool) {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				*dst = b
			}
		}
	}
	setInt := func(key string, dst *int) {
		if val := os.Getenv(key); val != "" {
			if i, err := strconv.Atoi(val); err == nil {
				*dst = i
			}
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if val := os.Getenv(key); val != "" {
			if d, err := time.ParseDuration(val); err == nil {
				*dst = d
			}
		}
	}

	setString("ATTEST_SPEC_PATH", &cfg.Spec.Path)
	setBool("ATTEST_SPEC_WATCH", &cfg.Spec.Watch)

	setInt("ATTEST_PROBES_CONCURRENCY", &cfg.Probes.Concurrency)
	setDuration("ATTEST_PROBES_DEFAULT_TIMEOUT", &cfg.Probes.DefaultTimeout)
	setString("ATTEST_PROBES_WORK_DIR", &cfg.Probes.WorkDir)

	setString("ATTEST_LLM_BASE_URL", &cfg.LLM.BaseURL)
	setString("ATTEST_LLM_API_KEY", &cfg.LLM.APIKey)
	setString("ATTEST_LLM_MODEL", &cfg.LLM.Model)
	setBool("ATTEST_LLM_CACHE_ENABLED", &cfg.LLM.Cache.Enabled)
	setString("ATTEST_LLM_CACHE_PATH", &cfg.LLM.Cache.Path)
	setDuration("ATTEST_LLM_CACHE_TTL", &cfg.LLM.Cache.TTL)

	setString("ATTEST_REPORT_STORAGE", &cfg.Report.Storage)
	setString("ATTEST_REPORT_PATH", &cfg.Report.Path)
	setBool("ATTEST_REPORT_RETENTION_ENABLED", &cfg.Report.Retention.Enabled)
	setString("ATTEST_REPORT_RETENTION_SCHEDULE", &cfg.Report.Retention.Schedule)
	setDuration("ATTEST_REPORT_RETENTION_MAX_AGE", &cfg.Report.Retention.MaxAge)
	setInt("ATTEST_REPORT_RETENTION_MAX_RUNS", &cfg.Report.Retention.MaxRuns)

	setBool("ATTEST_METRICS_ENABLED", &cfg.Metrics.Enabled)
	setString("ATTEST_METRICS_LISTEN_ADDRESS", &cfg.Metrics.ListenAddress)
	setString("ATTEST_METRICS_NAMESPACE", &cfg.Metrics.Namespace)

	setString("ATTEST_LOG_LEVEL", &cfg.Logging.Level)
	setString("ATTEST_LOG_FORMAT", &cfg.Logging.Format)
}
