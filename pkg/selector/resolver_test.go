package selector

import (
	"testing"

	"attest-hq/attest/pkg/fact"
)

// fixtureRecords builds the record map used across resolver tests: a passing
// shell probe with nested coverage JSON and a failing one.
func fixtureRecords() fact.RecordMap {
	return fact.RecordMap{
		"k-pytest": fact.NewRecord(fact.KindShell, map[string]fact.Value{
			"exit_code": fact.Int(0),
			"stdout":    fact.String("411 passed"),
			"duration":  fact.Number(7.2),
			"json": fact.Map(map[string]fact.Value{
				"totals": fact.Map(map[string]fact.Value{
					"percent_covered": fact.Number(100.0),
				}),
			}),
		}),
		"k-failing": fact.NewRecord(fact.KindShell, map[string]fact.Value{
			"exit_code": fact.Int(1),
			"stderr":    fact.String("Error: something went wrong"),
		}),
		"scan": fact.NewRecord(fact.KindScan, map[string]fact.Value{
			"files": fact.List(
				fact.Map(map[string]fact.Value{"path": fact.String("a.go"), "lines": fact.Int(10)}),
				fact.Map(map[string]fact.Value{"path": fact.String("b.go"), "lines": fact.Int(20)}),
			),
		}),
	}
}

func mustResolve(t *testing.T, text string, records fact.RecordMap) []Match {
	t.Helper()
	matches, err := ResolveString(text, records)
	if err != nil {
		t.Fatalf("ResolveString(%q) error = %v", text, err)
	}
	return matches
}

func TestResolve_Literal(t *testing.T) {
	records := fixtureRecords()

	tests := []struct {
		name     string
		selector string
		wantPath string
		wantVal  string
	}{
		{"top-level field", "k-pytest.exit_code", "k-pytest.exit_code", "0"},
		{"kind tag visible", "k-pytest.kind", "k-pytest.kind", "shell"},
		{"nested json", "k-pytest.json.totals.percent_covered", "k-pytest.json.totals.percent_covered", "100"},
		{"list index", "scan.files.0.path", "scan.files[0].path", "a.go"},
		{"whole record", "k-failing", "k-failing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := mustResolve(t, tt.selector, records)
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
			}
			if matches[0].Path != tt.wantPath {
				t.Errorf("path = %q, want %q", matches[0].Path, tt.wantPath)
			}
			if tt.wantVal != "" && matches[0].Value.String() != tt.wantVal {
				t.Errorf("value = %q, want %q", matches[0].Value.String(), tt.wantVal)
			}
		})
	}
}

func TestResolve_MissingIsEmpty(t *testing.T) {
	records := fixtureRecords()

	tests := []struct {
		name     string
		selector string
	}{
		{"missing record", "k-nonexistent.exit_code"},
		{"missing field", "k-pytest.no_such_field"},
		{"index out of range", "scan.files.9.path"},
		{"non-numeric index on list", "scan.files.first"},
		{"descend into scalar", "k-pytest.exit_code.deeper"},
		{"glob matching nothing", "z-*.exit_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if matches := mustResolve(t, tt.selector, records); len(matches) != 0 {
				t.Errorf("got %d matches, want 0: %v", len(matches), matches)
			}
		})
	}
}

func TestResolve_GlobOverRecords(t *testing.T) {
	records := fixtureRecords()

	matches := mustResolve(t, "k-*.exit_code", records)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %v", len(matches), matches)
	}
	// Lexicographic record order: k-failing before k-pytest.
	if matches[0].Path != "k-failing.exit_code" || matches[1].Path != "k-pytest.exit_code" {
		t.Errorf("paths = [%q, %q], want deterministic sorted order", matches[0].Path, matches[1].Path)
	}
	if v := matches[0].Value.String(); v != "1" {
		t.Errorf("k-failing exit_code = %q, want 1", v)
	}
}

func TestResolve_GlobOverListIndices(t *testing.T) {
	records := fixtureRecords()

	matches := mustResolve(t, "scan.files.*.path", records)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %v", len(matches), matches)
	}
	if matches[0].Path != "scan.files[0].path" || matches[1].Path != "scan.files[1].path" {
		t.Errorf("paths = [%q, %q], want index order", matches[0].Path, matches[1].Path)
	}

	// An alphabetic pattern never matches a numeric index.
	if matches := mustResolve(t, "scan.files.a*.path", records); len(matches) != 0 {
		t.Errorf("alphabetic glob matched %d numeric indices, want 0", len(matches))
	}
}

func TestResolve_GlobOverMapKeys(t *testing.T) {
	records := fact.RecordMap{
		"cov": fact.NewRecord(fact.KindShell, map[string]fact.Value{
			"json": fact.Map(map[string]fact.Value{
				"file_a": fact.Map(map[string]fact.Value{"pct": fact.Int(90)}),
				"file_b": fact.Map(map[string]fact.Value{"pct": fact.Int(80)}),
				"totals": fact.Map(map[string]fact.Value{"pct": fact.Int(85)}),
			}),
		}),
	}

	matches := mustResolve(t, "cov.json.file_*.pct", records)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %v", len(matches), matches)
	}
	if matches[0].Path != "cov.json.file_a.pct" || matches[1].Path != "cov.json.file_b.pct" {
		t.Errorf("paths = [%q, %q], want sorted key order", matches[0].Path, matches[1].Path)
	}
}

// TestResolve_GlobMonotonicity checks that widening a glob pattern never
// decreases the number of matches for a fixed record map.
func TestResolve_GlobMonotonicity(t *testing.T) {
	records := fixtureRecords()

	narrow := mustResolve(t, "k-py*.exit_code", records)
	wide := mustResolve(t, "k-*.exit_code", records)
	widest := mustResolve(t, "*.exit_code", records)

	if len(narrow) > len(wide) || len(wide) > len(widest) {
		t.Errorf("monotonicity violated: %d > %d or %d > %d",
			len(narrow), len(wide), len(wide), len(widest))
	}
	if len(narrow) != 1 || len(wide) != 2 {
		t.Errorf("match counts = %d, %d; want 1, 2", len(narrow), len(wide))
	}
}

func TestResolveFull_EmptyContainer(t *testing.T) {
	records := fact.RecordMap{
		"x": fact.NewRecord(fact.KindScan, map[string]fact.Value{
			"items":  fact.List(),
			"lookup": fact.Map(map[string]fact.Value{}),
			"full":   fact.List(fact.Int(1)),
		}),
	}

	tests := []struct {
		name      string
		selector  string
		wantEmpty bool
	}{
		{"glob over empty list", "x.items.*", true},
		{"glob over empty map", "x.lookup.*", true},
		{"glob over missing path", "x.absent.*", false},
		{"missing record", "y.items.*", false},
		{"glob with matches", "x.full.*", false},
		{"glob matching nothing on non-empty container", "x.full.a*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Parse(tt.selector)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.selector, err)
			}
			res := ResolveFull(sel, records)
			if res.EmptyContainer != tt.wantEmpty {
				t.Errorf("EmptyContainer = %v, want %v", res.EmptyContainer, tt.wantEmpty)
			}
		})
	}
}

func TestResolve_EmptySelector(t *testing.T) {
	if got := Resolve(&Selector{}, fixtureRecords()); got != nil {
		t.Errorf("Resolve(empty) = %v, want nil", got)
	}
	if got := Resolve(nil, fixtureRecords()); got != nil {
		t.Errorf("Resolve(nil) = %v, want nil", got)
	}
}
