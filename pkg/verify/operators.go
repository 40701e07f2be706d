package verify

import (
	"fmt"
	"regexp"
	"strings"

	"attest-hq/attest/pkg/fact"
)

// operatorFunc applies one operator to a resolved fact value and returns the
// outcome with a message ready for the detail trail. Operator functions
// never return errors; type mismatches are failed checks with an explanatory
// message.
type operatorFunc func(value, expected fact.Value) (bool, string)

// operators is the closed table of known operator names. Keeping the set in
// one table makes it auditable; an unrecognized name is a controlled failure
// handled by applyOperator.
var operators = map[string]operatorFunc{
	"eq":     opEq,
	"ne":     opNe,
	"lt":     opOrdering("lt", "<"),
	"lte":    opOrdering("lte", "<="),
	"gt":     opOrdering("gt", ">"),
	"gte":    opOrdering("gte", ">="),
	"in":     opIn,
	"match":  opMatch,
	"empty":  opEmpty,
	"exists": opExists,
}

// applyOperator looks up and applies a named operator.
func applyOperator(name string, value, expected fact.Value) (bool, string) {
	fn, ok := operators[name]
	if !ok {
		return false, fmt.Sprintf("unknown operator: %s", name)
	}
	return fn(value, expected)
}

func opEq(value, expected fact.Value) (bool, string) {
	if value.Equal(expected) {
		return true, fmt.Sprintf("= %s ✓", expected)
	}
	return false, fmt.Sprintf("expected = %s, got %s", expected, value)
}

func opNe(value, expected fact.Value) (bool, string) {
	if !value.Equal(expected) {
		return true, fmt.Sprintf("!= %s ✓", expected)
	}
	return false, fmt.Sprintf("expected != %s, got %s", expected, value)
}

// opOrdering builds the lt/lte/gt/gte operators. Numbers order numerically,
// strings lexicographically; anything else is a type mismatch reported as a
// failed check.
func opOrdering(name, symbol string) operatorFunc {
	return func(value, expected fact.Value) (bool, string) {
		cmp, ok := orderingCompare(value, expected)
		if !ok {
			return false, fmt.Sprintf("%s: cannot order %s value against %s value",
				name, value.Type, expected.Type)
		}

		var passed bool
		switch symbol {
		case "<":
			passed = cmp < 0
		case "<=":
			passed = cmp <= 0
		case ">":
			passed = cmp > 0
		case ">=":
			passed = cmp >= 0
		}

		if passed {
			return true, fmt.Sprintf("%s %s ✓", symbol, expected)
		}
		return false, fmt.Sprintf("expected %s %s, got %s", symbol, expected, value)
	}
}

// orderingCompare returns -1/0/+1 when both values share an orderable type.
func orderingCompare(value, expected fact.Value) (int, bool) {
	if a, ok := value.AsNumber(); ok {
		b, ok := expected.AsNumber()
		if !ok {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		default:
			return 0, true
		}
	}
	if a, ok := value.AsString(); ok {
		b, ok := expected.AsString()
		if !ok {
			return 0, false
		}
		return strings.Compare(a, b), true
	}
	return 0, false
}

// opIn has three modes dispatched on the resolved value's shape:
// a string value contains the expected substring; a list value contains the
// expected element; any other value is looked up inside the expected
// container.
func opIn(value, expected fact.Value) (bool, string) {
	if s, ok := value.AsString(); ok {
		if strings.Contains(s, expected.String()) {
			return true, fmt.Sprintf("contains %q ✓", expected)
		}
		return false, fmt.Sprintf("expected to contain %q, got %q", expected, s)
	}

	if l, ok := value.AsList(); ok {
		for _, elem := range l {
			if elem.Equal(expected) {
				return true, fmt.Sprintf("contains %s ✓", expected)
			}
		}
		return false, fmt.Sprintf("expected list to contain %s, got %s", expected, value)
	}

	// Value is a scalar: membership in the expected container.
	if l, ok := expected.AsList(); ok {
		for _, elem := range l {
			if elem.Equal(value) {
				return true, fmt.Sprintf("in %s ✓", expected)
			}
		}
		return false, fmt.Sprintf("expected %s in %s", value, expected)
	}
	if s, ok := expected.AsString(); ok {
		if strings.Contains(s, value.String()) {
			return true, fmt.Sprintf("in %q ✓", expected)
		}
		return false, fmt.Sprintf("expected %s in %q", value, s)
	}
	return false, fmt.Sprintf("in: expected a container, got %s value", expected.Type)
}

// opMatch applies an unanchored regex search to a string value.
func opMatch(value, expected fact.Value) (bool, string) {
	s, ok := value.AsString()
	if !ok {
		return false, fmt.Sprintf("match: value is not a string (got %s %s)", value.Type, value)
	}
	pattern, ok := expected.AsString()
	if !ok {
		return false, fmt.Sprintf("match: pattern is not a string (got %s)", expected.Type)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Sprintf("match: invalid pattern %q: %v", pattern, err)
	}
	if re.MatchString(s) {
		return true, fmt.Sprintf("matches /%s/ ✓", pattern)
	}
	return false, fmt.Sprintf("expected match /%s/, got %q", pattern, s)
}

// opEmpty checks for emptiness. Containers are empty when they hold nothing;
// scalars follow fact.Value's falsy rule, so 0, false and null all read as
// empty. This matches the historical claim-file semantics even though it
// conflates "empty" with "falsy" for numbers.
func opEmpty(value, expected fact.Value) (bool, string) {
	want, ok := expected.AsBool()
	if !ok {
		return false, fmt.Sprintf("empty: operand must be true or false, got %s", expected.Type)
	}
	isEmpty := !value.Truthy()
	if want {
		if isEmpty {
			return true, "empty ✓"
		}
		return false, fmt.Sprintf("expected empty, got %s", value)
	}
	if !isEmpty {
		return true, "non-empty ✓"
	}
	return false, fmt.Sprintf("expected non-empty, got %s", value)
}

// opExists is only reached for selectors that did resolve, so the value
// demonstrably exists: `exists = true` passes, `exists = false` fails.
func opExists(value, expected fact.Value) (bool, string) {
	want, ok := expected.AsBool()
	if !ok {
		return false, fmt.Sprintf("exists: operand must be true or false, got %s", expected.Type)
	}
	if want {
		return true, "exists ✓"
	}
	return false, fmt.Sprintf("expected absent, but found %s", value)
}
