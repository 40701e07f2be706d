package selector

import (
	"regexp"
	"strings"
)

// IsGlob reports whether a segment contains glob wildcards and therefore
// expands against its structural siblings instead of matching one child.
func IsGlob(segment string) bool {
	return strings.ContainsAny(segment, "*?")
}

// globToRegexp translates a glob pattern into an anchored regular expression.
// Only '*' (any run of characters) and '?' (any single character) are
// special; there are no character classes. Matching is case-sensitive and
// covers the full string.
//
// The translation is explicit rather than delegated to path.Match because
// the semantics are load-bearing: '*' must not be anchored to path
// boundaries, and a pattern like "a*" must never match a purely numeric list
// index such as "0".
func globToRegexp(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("\\A")
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(pattern[i])))
		}
	}
	sb.WriteString("\\z")
	return regexp.Compile(sb.String())
}

// globMatch reports whether s matches the glob pattern. A pattern that fails
// to compile matches nothing; with only '*' and '?' special this cannot
// happen in practice, but resolution must never panic.
func globMatch(pattern, s string) bool {
	re, err := globToRegexp(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}
