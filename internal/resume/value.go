// Package resume provides the structured value model for résumé documents as
// exchanged with the optimization backend: primitives, ordered sequences and
// ordered mappings.
package resume

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Value is a node of a résumé document. The set of implementations is closed:
// Primitive, Sequence and Mapping describe decoded JSON, while Callable and
// Opaque only arise from FromAny on Go values that JSON cannot represent.
type Value interface {
	isValue()
}

// PrimitiveKind identifies the JSON scalar type held by a Primitive.
type PrimitiveKind int

const (
	KindNull PrimitiveKind = iota
	KindBool
	KindNumber
	KindString
)

// String returns the JSON type name of the kind.
func (k PrimitiveKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", int(k))
	}
}

// Primitive is a JSON scalar. Text holds the string content for strings and
// the literal source text for numbers, booleans and null, so numbers keep the
// exact formatting the backend produced.
type Primitive struct {
	Kind PrimitiveKind
	Text string
}

// Sequence is an ordered list of values.
type Sequence struct {
	Items []Value
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an object with keys kept in first-occurrence order.
// A Mapping is not modified after construction.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// Callable stands in for a function value. It never comes out of JSON decoding.
type Callable struct {
	Name string
}

// Opaque wraps any other value that has no JSON shape. Label is the literal
// text shown in place of the value.
type Opaque struct {
	Label string
}

func (Primitive) isValue() {}
func (Sequence) isValue()  {}
func (Mapping) isValue()   {}
func (Callable) isValue()  {}
func (Opaque) isValue()    {}

// Null returns the JSON null value.
func Null() Primitive { return Primitive{Kind: KindNull, Text: "null"} }

// Bool returns a JSON boolean.
func Bool(b bool) Primitive { return Primitive{Kind: KindBool, Text: strconv.FormatBool(b)} }

// Number returns a JSON number from its literal text.
func Number(literal string) Primitive { return Primitive{Kind: KindNumber, Text: literal} }

// String returns a JSON string.
func String(s string) Primitive { return Primitive{Kind: KindString, Text: s} }

// NewSequence returns a sequence holding items.
func NewSequence(items ...Value) Sequence {
	return Sequence{Items: items}
}

// Len returns the number of items.
func (s Sequence) Len() int { return len(s.Items) }

// NewMapping builds a mapping from entries. When a key repeats, the first
// occurrence wins and later ones are dropped.
func NewMapping(entries ...Entry) Mapping {
	m := Mapping{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		m.add(e.Key, e.Value)
	}
	return m
}

// add appends key unless it is already present and reports whether it did.
func (m *Mapping) add(key string, v Value) bool {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if _, exists := m.index[key]; exists {
		return false
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
	return true
}

// Len returns the number of keys.
func (m Mapping) Len() int { return len(m.entries) }

// Keys returns the keys in order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the key/value pairs in order.
func (m Mapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Get returns the value stored under key.
func (m Mapping) Get(key string) (Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// IsNull reports whether v is absent or the JSON null.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	p, ok := v.(Primitive)
	return ok && p.Kind == KindNull
}

// FromAny converts a decoded Go value into a Value. Maps produced by
// encoding/json carry no key order, so their keys are sorted.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return Number(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return Number(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case int:
		return Number(strconv.Itoa(t))
	case int64:
		return Number(strconv.FormatInt(t, 10))
	case json.Number:
		return Number(t.String())
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return NewSequence(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k, Value: FromAny(t[k])}
		}
		return NewMapping(entries...)
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Func {
		return Callable{Name: rv.Type().String()}
	}
	return Opaque{Label: fmt.Sprintf("%v", x)}
}
