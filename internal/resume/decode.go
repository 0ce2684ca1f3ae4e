package resume

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// Parse decodes a JSON document into a Value. Object keys keep their document
// order; when a key repeats within one object the first occurrence wins.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Message: "document is empty"}
	}
	if !gjson.ValidBytes(data) {
		return nil, &DecodeError{Message: "document is not valid JSON"}
	}
	return FromResult(gjson.ParseBytes(data)), nil
}

// FromResult converts an already parsed gjson result. A result that does not
// exist converts to nil.
func FromResult(r gjson.Result) Value {
	if !r.Exists() {
		return nil
	}

	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	case gjson.Number:
		return Number(r.Raw)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			items := make([]Value, 0)
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, FromResult(item))
				return true
			})
			return NewSequence(items...)
		}
		var m Mapping
		r.ForEach(func(key, item gjson.Result) bool {
			m.add(key.String(), FromResult(item))
			return true
		})
		if m.index == nil {
			return NewMapping()
		}
		return m
	}
	return Opaque{Label: r.Raw}
}
