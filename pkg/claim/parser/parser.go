package parser

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/claim/claimerr"
)

// ParseFile loads and validates a claim spec file.
func ParseFile(path string) (*claim.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		errs := claimerr.NewList()
		errs.Add(&claimerr.Error{
			Type:    claimerr.TypeIO,
			File:    path,
			Message: err.Error(),
		})
		return nil, errs
	}
	return ParseBytes(data, path)
}

// ParseBytes parses spec file contents. sourcePath is used only for error
// reporting and as the document's default name.
func ParseBytes(data []byte, sourcePath string) (*claim.Document, error) {
	var ts tomlSpec
	if err := toml.Unmarshal(data, &ts); err != nil {
		errs := claimerr.NewList()
		errs.Add(&claimerr.Error{
			Type:    claimerr.TypeSyntax,
			File:    sourcePath,
			Message: err.Error(),
		})
		return nil, errs
	}

	return newBuilder(sourcePath).buildDocument(&ts)
}
