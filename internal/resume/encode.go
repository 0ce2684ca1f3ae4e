package resume

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the primitive back in its JSON form.
func (p Primitive) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindString:
		return json.Marshal(p.Text)
	case KindNull:
		return []byte("null"), nil
	default:
		return []byte(p.Text), nil
	}
}

// MarshalJSON writes the items in order.
func (s Sequence) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range s.Items {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := marshalValue(item)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON writes the object with its keys in their original order.
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := marshalValue(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes the callable as a placeholder string.
func (c Callable) MarshalJSON() ([]byte, error) {
	return json.Marshal(Display(c))
}

// MarshalJSON writes the fallback label as a string.
func (o Opaque) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Label)
}

func marshalValue(v Value) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// MarshalYAML implements yaml.Marshaler.
func (p Primitive) MarshalYAML() (any, error) { return yamlNode(p), nil }

// MarshalYAML implements yaml.Marshaler.
func (s Sequence) MarshalYAML() (any, error) { return yamlNode(s), nil }

// MarshalYAML implements yaml.Marshaler.
func (m Mapping) MarshalYAML() (any, error) { return yamlNode(m), nil }

// MarshalYAML implements yaml.Marshaler.
func (c Callable) MarshalYAML() (any, error) { return yamlNode(c), nil }

// MarshalYAML implements yaml.Marshaler.
func (o Opaque) MarshalYAML() (any, error) { return yamlNode(o), nil }

func yamlNode(v Value) *yaml.Node {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Primitive:
		n := &yaml.Node{Kind: yaml.ScalarNode, Value: t.Text}
		switch t.Kind {
		case KindNull:
			n.Tag = "!!null"
		case KindBool:
			n.Tag = "!!bool"
		case KindNumber:
			n.Tag = "!!int"
			if strings.ContainsAny(t.Text, ".eE") {
				n.Tag = "!!float"
			}
		default:
			n.Tag = "!!str"
		}
		return n
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t.Items {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range t.entries {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				yamlNode(e.Value))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: Display(v)}
	}
}

// Display returns the text shown for v in a rendered comparison. Containers
// are shown as compact JSON.
func Display(v Value) string {
	switch t := v.(type) {
	case nil:
		return "(missing)"
	case Primitive:
		return t.Text
	case Callable:
		return "[function]"
	case Opaque:
		return t.Label
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "(unrenderable)"
		}
		return string(b)
	}
}
