package parser

// Intermediate structures matching the TOML spec layout before
// transformation into the claim document model.

// tomlSpec is the root of a spec file.
type tomlSpec struct {
	Name    string               `toml:"name"`
	Version string               `toml:"version"`
	Probes  map[string]tomlProbe `toml:"probes"`
	Claims  map[string]tomlClaim `toml:"claims"`
}

// tomlProbe is one probe declaration.
type tomlProbe struct {
	Kind      string   `toml:"kind"`
	Command   string   `toml:"command"`
	URL       string   `toml:"url"`
	Prompt    string   `toml:"prompt"`
	Paths     []string `toml:"paths"`
	Pattern   string   `toml:"pattern"`
	ParseJSON bool     `toml:"parse_json"`
	Timeout   string   `toml:"timeout"`
}

// tomlClaim is one claim declaration. The rule table is decoded untyped and
// shaped by the builder.
type tomlClaim struct {
	Description string                 `toml:"description"`
	Severity    string                 `toml:"severity"`
	Rule        map[string]interface{} `toml:"rule"`
}
