package parser

import (
	"sort"
	"time"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/claim/claimerr"
	"attest-hq/attest/pkg/fact"
	"attest-hq/attest/pkg/selector"
)

// knownProbeKinds are the probe implementations the framework ships.
var knownProbeKinds = map[string]bool{
	fact.KindShell: true,
	fact.KindURL:   true,
	fact.KindLLM:   true,
	fact.KindScan:  true,
}

// knownOperators mirrors the evaluator's operator table for load-time
// validation. An unknown operator still evaluates to a controlled failure at
// runtime; flagging it here just catches typos earlier.
var knownOperators = map[string]bool{
	"eq": true, "ne": true,
	"lt": true, "lte": true, "gt": true, "gte": true,
	"in": true, "match": true, "empty": true, "exists": true,
}

// builder constructs the claim document from intermediate TOML structures,
// accumulating every problem it finds.
type builder struct {
	sourcePath string
	errors     *claimerr.List
}

func newBuilder(sourcePath string) *builder {
	return &builder{sourcePath: sourcePath, errors: claimerr.NewList()}
}

// addError records a structural or semantic problem against a spec element.
func (b *builder) addError(t claimerr.Type, subject, format string, args ...interface{}) {
	b.errors.Addf(t, subject, format, args...)
	b.errors.Errors[len(b.errors.Errors)-1].File = b.sourcePath
}

// buildDocument transforms a decoded spec into a claim.Document.
func (b *builder) buildDocument(ts *tomlSpec) (*claim.Document, error) {
	doc := &claim.Document{
		Name:       ts.Name,
		Version:    ts.Version,
		SourceFile: b.sourcePath,
		Loaded:     time.Now(),
	}
	if doc.Name == "" {
		doc.Name = b.sourcePath
	}

	for _, id := range sortedKeys(ts.Probes) {
		if decl, ok := b.buildProbe(id, ts.Probes[id]); ok {
			doc.Probes = append(doc.Probes, decl)
		}
	}

	for _, id := range sortedKeys(ts.Claims) {
		if c, ok := b.buildClaim(id, ts.Claims[id]); ok {
			doc.Claims = append(doc.Claims, c)
		}
	}

	if b.errors.HasErrors() {
		return nil, b.errors
	}
	return doc, nil
}

// buildProbe validates one probe declaration.
func (b *builder) buildProbe(id string, tp tomlProbe) (claim.ProbeDecl, bool) {
	subject := "probes." + id

	decl := claim.ProbeDecl{
		ID:        id,
		Kind:      tp.Kind,
		Command:   tp.Command,
		URL:       tp.URL,
		Prompt:    tp.Prompt,
		Paths:     tp.Paths,
		Pattern:   tp.Pattern,
		ParseJSON: tp.ParseJSON,
	}

	if !knownProbeKinds[tp.Kind] {
		b.addError(claimerr.TypeSemantic, subject, "unknown probe kind %q", tp.Kind)
		return decl, false
	}

	switch tp.Kind {
	case fact.KindShell:
		if tp.Command == "" {
			b.addError(claimerr.TypeStructural, subject, "shell probe requires a command")
			return decl, false
		}
	case fact.KindURL:
		if tp.URL == "" {
			b.addError(claimerr.TypeStructural, subject, "url probe requires a url")
			return decl, false
		}
	case fact.KindLLM:
		if tp.Prompt == "" {
			b.addError(claimerr.TypeStructural, subject, "llm probe requires a prompt")
			return decl, false
		}
	case fact.KindScan:
		if len(tp.Paths) == 0 {
			b.addError(claimerr.TypeStructural, subject, "scan probe requires paths")
			return decl, false
		}
	}

	if tp.Timeout != "" {
		d, err := time.ParseDuration(tp.Timeout)
		if err != nil {
			b.addError(claimerr.TypeStructural, subject, "invalid timeout %q: %v", tp.Timeout, err)
			return decl, false
		}
		decl.Timeout = d
	}

	return decl, true
}

// buildClaim validates one claim and builds its rule tree.
func (b *builder) buildClaim(id string, tc tomlClaim) (*claim.Claim, bool) {
	subject := "claims." + id

	c := &claim.Claim{
		ID:          id,
		Description: tc.Description,
		Severity:    claim.SeverityError,
	}

	switch tc.Severity {
	case "":
	case string(claim.SeverityError), string(claim.SeverityWarning), string(claim.SeverityInfo):
		c.Severity = claim.Severity(tc.Severity)
	default:
		b.addError(claimerr.TypeSemantic, subject, "unknown severity %q", tc.Severity)
		return nil, false
	}

	rule, ok := b.buildRule(subject+".rule", tc.Rule)
	if !ok {
		return nil, false
	}
	c.Rule = rule
	return c, true
}

// buildRule shapes an untyped rule table into a claim.Rule. The reserved
// keys "and", "or" and "not" are checked in dispatch priority order; any
// other table is the selector-map leaf form.
func (b *builder) buildRule(subject string, raw map[string]interface{}) (*claim.Rule, bool) {
	if raw == nil {
		// No rule table at all: the vacuous empty AND.
		return claim.Checks(), true
	}

	if v, ok := raw["and"]; ok {
		children, ok := b.buildClauseList(subject+".and", v)
		if !ok {
			return nil, false
		}
		return claim.And(children...), true
	}

	if v, ok := raw["or"]; ok {
		children, ok := b.buildClauseList(subject+".or", v)
		if !ok {
			return nil, false
		}
		return claim.Or(children...), true
	}

	if v, ok := raw["not"]; ok {
		inner, ok := v.(map[string]interface{})
		if !ok {
			b.addError(claimerr.TypeStructural, subject+".not", "not takes a rule table, got %T", v)
			return nil, false
		}
		child, ok := b.buildRule(subject+".not", inner)
		if !ok {
			return nil, false
		}
		return claim.Not(child), true
	}

	return b.buildChecks(subject, raw)
}

// buildClauseList shapes the child rules of an and/or node.
func (b *builder) buildClauseList(subject string, v interface{}) ([]*claim.Rule, bool) {
	list, ok := v.([]interface{})
	if !ok {
		b.addError(claimerr.TypeStructural, subject, "boolean node takes a list of rules, got %T", v)
		return nil, false
	}
	children := make([]*claim.Rule, 0, len(list))
	for i, elem := range list {
		m, ok := elem.(map[string]interface{})
		if !ok {
			b.addError(claimerr.TypeStructural, subject, "clause %d is not a rule table (got %T)", i, elem)
			return nil, false
		}
		child, ok := b.buildRule(subject, m)
		if !ok {
			return nil, false
		}
		children = append(children, child)
	}
	return children, true
}

// buildChecks shapes a selector-map leaf. Selector syntax and operator names
// are validated here so evaluation never hits a contract violation from a
// loaded spec.
func (b *builder) buildChecks(subject string, raw map[string]interface{}) (*claim.Rule, bool) {
	entries := make([]claim.CheckEntry, 0, len(raw))
	ok := true

	for _, sel := range sortedKeys(raw) {
		if _, err := selector.Parse(sel); err != nil {
			b.addError(claimerr.TypeSemantic, subject, "invalid selector %q: %v", sel, err)
			ok = false
			continue
		}

		opTable, isMap := raw[sel].(map[string]interface{})
		if !isMap {
			b.addError(claimerr.TypeStructural, subject,
				"selector %q must map to an operator table, got %T", sel, raw[sel])
			ok = false
			continue
		}

		checks, built := b.buildCheckSet(subject+"."+sel, opTable)
		if !built {
			ok = false
			continue
		}
		entries = append(entries, claim.CheckEntry{Selector: sel, Checks: checks})
	}

	if !ok {
		return nil, false
	}
	return claim.Checks(entries...), true
}

// buildCheckSet shapes one operator table, unwrapping an "any"/"all"
// quantifier when present.
func (b *builder) buildCheckSet(subject string, table map[string]interface{}) (claim.CheckSet, bool) {
	quantifier := claim.QuantifierAll

	if inner, ok := table["any"]; ok {
		m, isMap := inner.(map[string]interface{})
		if !isMap {
			b.addError(claimerr.TypeStructural, subject, "any takes an operator table, got %T", inner)
			return claim.CheckSet{}, false
		}
		quantifier = claim.QuantifierAny
		table = m
	} else if inner, ok := table["all"]; ok {
		m, isMap := inner.(map[string]interface{})
		if !isMap {
			b.addError(claimerr.TypeStructural, subject, "all takes an operator table, got %T", inner)
			return claim.CheckSet{}, false
		}
		table = m
	}

	ops := make([]claim.OpCheck, 0, len(table))
	for _, name := range sortedKeys(table) {
		if !knownOperators[name] {
			b.addError(claimerr.TypeSemantic, subject, "unknown operator %q", name)
			b.errors.Errors[len(b.errors.Errors)-1].Suggestion =
				"one of eq, ne, lt, lte, gt, gte, in, match, empty, exists"
			return claim.CheckSet{}, false
		}
		ops = append(ops, claim.OpCheck{Op: name, Expected: fact.FromAny(table[name])})
	}

	return claim.CheckSet{Quantifier: quantifier, Ops: ops}, true
}

// sortedKeys returns map keys in lexicographic order for deterministic
// document construction.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
