package verify

import (
	"strings"
	"testing"

	"attest-hq/attest/pkg/fact"
)

func TestApplyOperator(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		value    fact.Value
		expected fact.Value
		want     bool
		wantMsg  string // substring the message must contain
	}{
		{"eq pass number", "eq", fact.Int(5), fact.Int(5), true, "= 5 ✓"},
		{"eq pass int vs float", "eq", fact.Int(5), fact.Number(5.0), true, "= 5 ✓"},
		{"eq fail", "eq", fact.Int(0), fact.Int(1), false, "expected = 1, got 0"},
		{"eq type sensitive", "eq", fact.String("5"), fact.Int(5), false, "expected = 5"},
		{"ne pass", "ne", fact.String("a"), fact.String("b"), true, "!= b ✓"},
		{"ne fail", "ne", fact.String("a"), fact.String("a"), false, "expected != a"},

		{"lt pass", "lt", fact.Int(1), fact.Int(2), true, "< 2 ✓"},
		{"lt fail", "lt", fact.Int(3), fact.Int(2), false, "expected < 2, got 3"},
		{"lte pass equal", "lte", fact.Number(100), fact.Int(100), true, "<= 100 ✓"},
		{"gt pass", "gt", fact.Number(7.2), fact.Int(7), true, "> 7 ✓"},
		{"gte pass", "gte", fact.Number(100), fact.Int(98), true, ">= 98 ✓"},
		{"gte fail", "gte", fact.Int(90), fact.Int(98), false, "expected >= 98, got 90"},
		{"string ordering", "lt", fact.String("abc"), fact.String("abd"), true, "< abd ✓"},
		{"ordering type mismatch", "lt", fact.String("abc"), fact.Int(5), false, "cannot order string value against number value"},
		{"ordering on bool", "gt", fact.Bool(true), fact.Bool(false), false, "cannot order"},

		{"in substring", "in", fact.String("411 passed"), fact.String("passed"), true, "contains"},
		{"in substring fail", "in", fact.String("411 passed"), fact.String("failed"), false, "expected to contain"},
		{"in list element", "in", fact.List(fact.Int(1), fact.Int(2)), fact.Int(2), true, "contains 2 ✓"},
		{"in list element fail", "in", fact.List(fact.Int(1)), fact.Int(2), false, "expected list to contain 2"},
		{"in membership", "in", fact.Int(2), fact.List(fact.Int(1), fact.Int(2)), true, "in [1, 2] ✓"},
		{"in membership fail", "in", fact.Int(3), fact.List(fact.Int(1), fact.Int(2)), false, "expected 3 in"},
		{"in scalar vs scalar", "in", fact.Int(3), fact.Int(4), false, "expected a container"},

		{"match pass", "match", fact.String("411 passed"), fact.String(`\d+ passed`), true, "matches"},
		{"match search anywhere", "match", fact.String("prefix 411 passed suffix"), fact.String(`\d+ passed`), true, "matches"},
		{"match fail", "match", fact.String("nothing"), fact.String(`\d+`), false, "expected match"},
		{"match non-string value", "match", fact.Int(7), fact.String(`\d+`), false, "value is not a string"},
		{"match invalid pattern", "match", fact.String("x"), fact.String("("), false, "invalid pattern"},

		{"empty true on empty string", "empty", fact.String(""), fact.Bool(true), true, "empty ✓"},
		{"empty true on empty list", "empty", fact.List(), fact.Bool(true), true, "empty ✓"},
		{"empty true on zero", "empty", fact.Int(0), fact.Bool(true), true, "empty ✓"},
		{"empty true on false", "empty", fact.Bool(false), fact.Bool(true), true, "empty ✓"},
		{"empty true on null", "empty", fact.Null(), fact.Bool(true), true, "empty ✓"},
		{"empty true fails on content", "empty", fact.String("x"), fact.Bool(true), false, "expected empty"},
		{"empty false on content", "empty", fact.String("x"), fact.Bool(false), true, "non-empty ✓"},
		{"empty false fails on zero", "empty", fact.Int(0), fact.Bool(false), false, "expected non-empty"},
		{"empty non-bool operand", "empty", fact.Int(0), fact.Int(1), false, "must be true or false"},

		{"exists true", "exists", fact.Int(0), fact.Bool(true), true, "exists ✓"},
		{"exists false fails", "exists", fact.Int(0), fact.Bool(false), false, "expected absent"},

		{"unknown operator", "approximately", fact.Int(1), fact.Int(1), false, "unknown operator: approximately"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := applyOperator(tt.op, tt.value, tt.expected)
			if got != tt.want {
				t.Errorf("applyOperator(%s) = %v, want %v (msg %q)", tt.op, got, tt.want, msg)
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", msg, tt.wantMsg)
			}
		})
	}
}
