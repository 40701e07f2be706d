package selector

import "testing"

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"star matches run", "k-*", "k-pytest", true},
		{"star matches empty run", "k-*", "k-", true},
		{"anchored at start", "k-*", "xk-pytest", false},
		{"anchored at end", "*-pytest", "k-pytest-extra", false},
		{"question mark single char", "k-?", "k-a", true},
		{"question mark not zero chars", "k-?", "k-", false},
		{"question mark not two chars", "k-?", "k-ab", false},
		{"star crosses dots and slashes", "src/*", "src/a.b/c", true},
		{"case sensitive", "K-*", "k-pytest", false},
		{"no classes, brackets literal", "a[b]", "a[b]", true},
		{"regex metachars literal", "a.b", "a.b", true},
		{"regex metachars not wild", "a.b", "axb", false},
		{"alpha pattern never matches numeric index", "a*", "0", false},
		{"numeric glob matches index", "*", "0", true},
		{"exact without wildcards", "abc", "abc", true},
		{"exact mismatch", "abc", "abd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := globMatch(tt.pattern, tt.input); got != tt.want {
				t.Errorf("globMatch(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

func TestIsGlob(t *testing.T) {
	tests := []struct {
		segment string
		want    bool
	}{
		{"k-pytest", false},
		{"k-*", true},
		{"k-?", true},
		{"*", true},
		{"src/main.go", false},
	}

	for _, tt := range tests {
		if got := IsGlob(tt.segment); got != tt.want {
			t.Errorf("IsGlob(%q) = %v, want %v", tt.segment, got, tt.want)
		}
	}
}
