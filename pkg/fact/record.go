package fact

// Record kinds produced by the built-in probes.
const (
	KindShell = "shell"
	KindURL   = "url"
	KindLLM   = "llm"
	KindScan  = "scan"
)

// Record is an immutable evidence record produced by a single probe run.
// Every record carries a kind tag plus kind-specific fields; the engine sees
// it only through its Value view.
type Record struct {
	// Kind is the probe discriminator ("shell", "url", "llm", "scan").
	Kind string

	// Fields holds the kind-specific payload. The map is owned by the record
	// and must not be modified after construction.
	Fields map[string]Value
}

// NewRecord constructs a record. The fields map is used as-is.
func NewRecord(kind string, fields map[string]Value) *Record {
	if fields == nil {
		fields = make(map[string]Value)
	}
	return &Record{Kind: kind, Fields: fields}
}

// Value returns the structural view of the record: all declared fields as a
// map, with the kind tag included under "kind". Selectors descend into
// records through this view.
func (r *Record) Value() Value {
	fields := make(map[string]Value, len(r.Fields)+1)
	for k, v := range r.Fields {
		fields[k] = v
	}
	fields["kind"] = String(r.Kind)
	return Map(fields)
}

// Field returns a single named field.
func (r *Record) Field(name string) (Value, bool) {
	if name == "kind" {
		return String(r.Kind), true
	}
	v, ok := r.Fields[name]
	return v, ok
}

// RecordMap is the mapping from probe identifier to its fact record, built
// fresh per verification run and read-only during evaluation.
type RecordMap map[string]*Record
