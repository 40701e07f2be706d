package fact

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueType discriminates the kinds of a Value.
type ValueType string

const (
	TypeNull   ValueType = "null"
	TypeBool   ValueType = "bool"
	TypeNumber ValueType = "number"
	TypeString ValueType = "string"
	TypeList   ValueType = "list"
	TypeMap    ValueType = "map"
)

// Value is a single node in an evidence tree. The zero Value is Null.
// Values are treated as immutable once constructed; nothing in this module
// mutates a Value after it has been handed to the engine.
type Value struct {
	Type ValueType
	// Data holds the underlying value: nil for null, bool, float64, string,
	// []Value, or map[string]Value according to Type.
	Data interface{}
}

// Null returns the null Value.
func Null() Value { return Value{Type: TypeNull} }

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{Type: TypeBool, Data: b} }

// Number constructs a numeric Value.
func Number(n float64) Value { return Value{Type: TypeNumber, Data: n} }

// Int constructs a numeric Value from an integer.
func Int(n int) Value { return Number(float64(n)) }

// String constructs a string Value.
func String(s string) Value { return Value{Type: TypeString, Data: s} }

// List constructs a list Value from its elements.
func List(elems ...Value) Value { return Value{Type: TypeList, Data: elems} }

// Map constructs a map Value. The supplied map is used as-is; callers must
// not modify it afterwards.
func Map(fields map[string]Value) Value { return Value{Type: TypeMap, Data: fields} }

// FromAny converts an arbitrary decoded document value (the shapes produced
// by encoding/json, go-toml and yaml.v3) into a Value. Unsupported types fall
// back to their string form rather than failing: evidence conversion must
// never abort a verification run.
func FromAny(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int8:
		return Number(float64(val))
	case int16:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case uint:
		return Number(float64(val))
	case uint8:
		return Number(float64(val))
	case uint16:
		return Number(float64(val))
	case uint32:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	case string:
		return String(val)
	case []interface{}:
		elems := make([]Value, 0, len(val))
		for _, e := range val {
			elems = append(elems, FromAny(e))
		}
		return List(elems...)
	case []string:
		elems := make([]Value, 0, len(val))
		for _, e := range val {
			elems = append(elems, String(e))
		}
		return List(elems...)
	case []Value:
		return List(val...)
	case map[string]interface{}:
		fields := make(map[string]Value, len(val))
		for k, e := range val {
			fields[k] = FromAny(e)
		}
		return Map(fields)
	case map[string]Value:
		return Map(val)
	case Value:
		return val
	default:
		return String(fmt.Sprint(v))
	}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.Type == TypeNull || v.Type == "" }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.Data.(bool)
	return b, ok && v.Type == TypeBool
}

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) {
	n, ok := v.Data.(float64)
	return n, ok && v.Type == TypeNumber
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	s, ok := v.Data.(string)
	return s, ok && v.Type == TypeString
}

// AsList returns the list payload.
func (v Value) AsList() ([]Value, bool) {
	l, ok := v.Data.([]Value)
	return l, ok && v.Type == TypeList
}

// AsMap returns the map payload.
func (v Value) AsMap() (map[string]Value, bool) {
	m, ok := v.Data.(map[string]Value)
	return m, ok && v.Type == TypeMap
}

// SortedKeys returns the map keys in lexicographic order. Resolution results
// must be deterministic, so every map walk in the engine goes through here.
func (v Value) SortedKeys() []string {
	m, ok := v.AsMap()
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Truthy reports whether the value counts as non-empty for the `empty`
// operator. Containers are truthy when non-empty; scalars follow the usual
// falsy rule: "" / 0 / false / null are empty. Note this conflates "empty"
// with "falsy" for scalars (exit_code 0 reads as empty); the behavior is
// kept for compatibility with existing claim files.
func (v Value) Truthy() bool {
	switch v.Type {
	case TypeBool:
		b, _ := v.AsBool()
		return b
	case TypeNumber:
		n, _ := v.AsNumber()
		return n != 0
	case TypeString:
		s, _ := v.AsString()
		return s != ""
	case TypeList:
		l, _ := v.AsList()
		return len(l) > 0
	case TypeMap:
		m, _ := v.AsMap()
		return len(m) > 0
	default:
		return false
	}
}

// Equal reports deep equality between two values. Numbers compare by value,
// so Int(5) equals Number(5.0).
func (v Value) Equal(other Value) bool {
	if v.IsNull() && other.IsNull() {
		return true
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case TypeBool:
		a, _ := v.AsBool()
		b, _ := other.AsBool()
		return a == b
	case TypeNumber:
		a, _ := v.AsNumber()
		b, _ := other.AsNumber()
		return a == b
	case TypeString:
		a, _ := v.AsString()
		b, _ := other.AsString()
		return a == b
	case TypeList:
		a, _ := v.AsList()
		b, _ := other.AsList()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case TypeMap:
		a, _ := v.AsMap()
		b, _ := other.AsMap()
		if len(a) != len(b) {
			return false
		}
		for k, av := range a {
			bv, ok := b[k]
			if !ok || !av.Equal(bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Interface converts the value back to plain Go data, the inverse of
// FromAny. Useful for JSON encoding of collected evidence.
func (v Value) Interface() interface{} {
	switch v.Type {
	case TypeBool, TypeNumber, TypeString:
		return v.Data
	case TypeList:
		l, _ := v.AsList()
		out := make([]interface{}, len(l))
		for i, e := range l {
			out[i] = e.Interface()
		}
		return out
	case TypeMap:
		m, _ := v.AsMap()
		out := make(map[string]interface{}, len(m))
		for k, e := range m {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// String renders the value for diagnostic messages. Numbers print without a
// trailing ".0"; strings print bare (not quoted) since they usually appear
// inside an already-structured detail line.
func (v Value) String() string {
	switch v.Type {
	case TypeBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case TypeNumber:
		n, _ := v.AsNumber()
		return strconv.FormatFloat(n, 'f', -1, 64)
	case TypeString:
		s, _ := v.AsString()
		return s
	case TypeList:
		l, _ := v.AsList()
		parts := make([]string, 0, len(l))
		for _, e := range l {
			parts = append(parts, e.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeMap:
		keys := v.SortedKeys()
		m, _ := v.AsMap()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+m[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}
