package config

import "time"

// Config is the root configuration for attest.
type Config struct {
	// Spec configures where claim spec files are loaded from.
	Spec SpecConfig `yaml:"spec"`

	// Probes configures evidence collection.
	Probes ProbesConfig `yaml:"probes"`

	// LLM configures the judgment probe backend.
	LLM LLMConfig `yaml:"llm"`

	// Report configures verification run storage.
	Report ReportConfig `yaml:"report"`

	// Metrics configures Prometheus metric exposure.
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`
}

// SpecConfig locates claim spec files.
type SpecConfig struct {
	// Path is a spec file or a directory of *.toml spec files.
	Path string `yaml:"path"`

	// Watch enables reloading specs when files change.
	Watch bool `yaml:"watch"`
}

// ProbesConfig controls how probes run.
type ProbesConfig struct {
	// Concurrency is the number of probes run in parallel.
	Concurrency int `yaml:"concurrency"`

	// DefaultTimeout applies to probes that declare no timeout of their own.
	DefaultTimeout time.Duration `yaml:"default_timeout"`

	// WorkDir is the working directory for shell and scan probes.
	// Empty means the current directory.
	WorkDir string `yaml:"work_dir"`
}

// LLMConfig configures the chat-completion backend used by llm probes.
type LLMConfig struct {
	// BaseURL is the OpenAI-compatible API endpoint.
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates against the endpoint. Prefer setting it via the
	// ATTEST_LLM_API_KEY environment variable.
	APIKey string `yaml:"api_key"`

	// Model is the model name sent with each request.
	Model string `yaml:"model"`

	// Cache configures the on-disk response cache.
	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig configures the llm probe response cache.
type CacheConfig struct {
	// Enabled turns the cache on.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file for cached responses.
	Path string `yaml:"path"`

	// TTL is how long a cached response stays valid.
	TTL time.Duration `yaml:"ttl"`
}

// ReportConfig configures verification run storage and retention.
type ReportConfig struct {
	// Storage selects the backend: "memory" or "sqlite".
	Storage string `yaml:"storage"`

	// Path is the SQLite database file when Storage is "sqlite".
	Path string `yaml:"path"`

	// Retention configures periodic pruning of old runs.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig controls pruning of stored verification runs.
type RetentionConfig struct {
	// Enabled turns periodic pruning on.
	Enabled bool `yaml:"enabled"`

	// Schedule is a cron expression for when pruning runs.
	Schedule string `yaml:"schedule"`

	// MaxAge removes runs older than this. Zero disables age pruning.
	MaxAge time.Duration `yaml:"max_age"`

	// MaxRuns keeps at most this many runs. Zero disables count pruning.
	MaxRuns int `yaml:"max_runs"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress serves /metrics when non-empty, e.g. ":9464".
	ListenAddress string `yaml:"listen_address"`

	// Namespace prefixes all metric names.
	Namespace string `yaml:"namespace"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}
