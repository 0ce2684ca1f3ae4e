// Package diffpath provides structured addresses into résumé documents and
// the conversion to and from the bracketed path strings used by the
// structural-diff producer, e.g. root['education'][0]['degree'].
package diffpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// RootName is the leading token of every path string.
const RootName = "root"

// Segment is one step of a Path: either an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a segment addressing an object field.
func Key(name string) Segment { return Segment{key: name} }

// Index returns a segment addressing an array element.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Name returns the object key. It is empty for index segments.
func (s Segment) Name() string { return s.key }

// Position returns the array index. It is zero for key segments.
func (s Segment) Position() int { return s.index }

// String formats the segment in bracket notation.
func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return "[" + quoteKey(s.key) + "]"
}

// Path addresses a node inside a document. The zero value is the root.
// Paths are treated as immutable; Key and Index return extended copies.
type Path []Segment

// Root returns the empty path.
func Root() Path { return nil }

// Key returns p extended by an object field.
func (p Path) Key(name string) Path { return p.extend(Key(name)) }

// Index returns p extended by an array element.
func (p Path) Index(i int) Path { return p.extend(Index(i)) }

func (p Path) extend(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Depth returns the number of segments.
func (p Path) Depth() int { return len(p) }

// Section returns the top-level object key the path falls under.
func (p Path) Section() (string, bool) {
	if len(p) == 0 || p[0].isIndex {
		return "", false
	}
	return p[0].key, true
}

// Equal reports whether p and q address the same node.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is p or one of its ancestors.
func (p Path) HasPrefix(q Path) bool {
	return len(q) <= len(p) && p[:len(q)].Equal(q)
}

// String formats the path exactly as the diff producer does.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString(RootName)
	for _, s := range p {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// quoteKey renders key the way Python's repr renders a str: single quotes,
// switching to double quotes when the key holds a single quote but no double
// quote. Non-printable characters use \xNN, \uNNNN or \UNNNNNNNN escapes.
func quoteKey(key string) string {
	quote := '\''
	if strings.Contains(key, "'") && !strings.Contains(key, `"`) {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteRune(quote)
	for _, r := range key {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == quote:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		case r <= 0xff:
			_, _ = fmt.Fprintf(&sb, `\x%02x`, r)
		case r <= 0xffff:
			_, _ = fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			_, _ = fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	sb.WriteRune(quote)
	return sb.String()
}
