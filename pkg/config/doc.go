// Package config defines the runtime configuration for attest.
//
// Configuration is loaded from a YAML file, filled in with defaults,
// optionally overridden by ATTEST_* environment variables, and validated
// before use. Environment variables follow the convention
// ATTEST_SECTION_FIELD, for example ATTEST_PROBES_CONCURRENCY or
// ATTEST_LLM_API_KEY. Environment values always win over file values.
package config
