package selector

import (
	"sort"
	"strconv"

	"attest-hq/attest/pkg/fact"
)

// Match is a single resolution result: the concrete path that was reached
// and the value found there.
type Match struct {
	// Path is the fully resolved path string. Map descent appends ".key";
	// list descent appends "[index]".
	Path string

	// Value is the node at the resolved path.
	Value fact.Value
}

// Resolution is the full outcome of resolving a selector.
type Resolution struct {
	// Matches are the (path, value) pairs the selector addresses.
	Matches []Match

	// EmptyContainer reports that the walk reached an existing map or list
	// that was empty when a glob segment expanded against it. The evaluator
	// distinguishes this "resolved but empty" outcome from a selector that
	// addressed nothing at all: a quantified check over an empty container
	// is vacuously satisfiable, a missing path never is.
	EmptyContainer bool
}

// Resolve walks a parsed selector over a record map and returns every
// (path, value) pair the selector addresses. Glob segments expand into all
// matching branches; literal segments match exactly one child.
//
// Resolution never fails: a missing record, missing key, out-of-range index,
// or glob that matches nothing all yield an empty (or shorter) result list.
// Results are deterministic; record ids and map keys are visited in
// lexicographic order, list elements in index order.
func Resolve(sel *Selector, records fact.RecordMap) []Match {
	return ResolveFull(sel, records).Matches
}

// ResolveFull resolves a selector and additionally reports whether an empty
// structural container was encountered during glob expansion.
func ResolveFull(sel *Selector, records fact.RecordMap) Resolution {
	if sel == nil || len(sel.Segments) == 0 {
		return Resolution{}
	}

	w := &walker{}
	head, rest := sel.Segments[0], sel.Segments[1:]

	if IsGlob(head) {
		ids := make([]string, 0, len(records))
		for id := range records {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if globMatch(head, id) {
				w.walk(id, records[id].Value(), rest)
			}
		}
		return Resolution{Matches: w.matches, EmptyContainer: w.emptyContainer}
	}

	rec, ok := records[head]
	if !ok {
		return Resolution{}
	}
	w.walk(head, rec.Value(), rest)
	return Resolution{Matches: w.matches, EmptyContainer: w.emptyContainer}
}

// ResolveString parses and resolves a selector expression in one step.
func ResolveString(text string, records fact.RecordMap) ([]Match, error) {
	sel, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Resolve(sel, records), nil
}

type walker struct {
	matches        []Match
	emptyContainer bool
}

// walk descends one segment at a time from the current node, appending every
// reached leaf to the walker's matches.
func (w *walker) walk(path string, node fact.Value, segments []string) {
	if len(segments) == 0 {
		w.matches = append(w.matches, Match{Path: path, Value: node})
		return
	}

	seg, rest := segments[0], segments[1:]

	if m, ok := node.AsMap(); ok {
		if IsGlob(seg) {
			if len(m) == 0 {
				w.emptyContainer = true
				return
			}
			for _, key := range node.SortedKeys() {
				if globMatch(seg, key) {
					w.walk(path+"."+key, m[key], rest)
				}
			}
			return
		}
		child, ok := m[seg]
		if !ok {
			return
		}
		w.walk(path+"."+seg, child, rest)
		return
	}

	if l, ok := node.AsList(); ok {
		if IsGlob(seg) {
			if len(l) == 0 {
				w.emptyContainer = true
				return
			}
			for i, child := range l {
				if globMatch(seg, strconv.Itoa(i)) {
					w.walk(path+"["+strconv.Itoa(i)+"]", child, rest)
				}
			}
			return
		}
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(l) {
			return
		}
		w.walk(path+"["+seg+"]", l[idx], rest)
		return
	}

	// Scalar: cannot descend further.
}
