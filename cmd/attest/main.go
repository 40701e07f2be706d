// Attest verifies claims about a codebase against collected evidence.
//
// A claim spec (TOML) declares probes that gather facts (shell commands,
// HTTP endpoints, file scans, LLM judgments) and claims whose rules are
// checked against those facts.
//
// Usage:
//
//	# Verify the spec in the current directory
//	attest verify
//
//	# Verify a specific spec and re-run on changes
//	attest verify --spec specs/ --watch
//
//	# Validate spec files without running probes
//	attest lint --spec attest.toml
//
//	# List or execute the probes a spec declares
//	attest probes --spec attest.toml
//	attest probes --spec attest.toml --exec
//
//	# Show stored verification runs
//	attest report list
package main

func main() {
	Execute()
}
