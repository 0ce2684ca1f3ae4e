package diffpath

import (
	"strconv"
	"strings"
	"unicode"
)

// Parse converts a path string such as root['skills'][1] into a Path.
// Keys may be single or double quoted; indexes are non-negative integers.
func Parse(s string) (Path, error) {
	if !strings.HasPrefix(s, RootName) {
		return nil, &SyntaxError{Input: s, Offset: 0, Message: "path must start with " + RootName}
	}

	p := &parser{input: s, pos: len(RootName)}
	var path Path
	for p.pos < len(s) {
		seg, err := p.segment()
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
	}
	return path, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// literals in tests and fixtures.
func MustParse(s string) Path {
	path, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return path
}

type parser struct {
	input string
	pos   int
}

func (p *parser) fail(msg string) error {
	return &SyntaxError{Input: p.input, Offset: p.pos, Message: msg}
}

func (p *parser) segment() (Segment, error) {
	if p.input[p.pos] != '[' {
		return Segment{}, p.fail("expected '['")
	}
	p.pos++
	if p.pos >= len(p.input) {
		return Segment{}, p.fail("unexpected end of path")
	}

	var seg Segment
	switch c := p.input[p.pos]; {
	case c == '\'' || c == '"':
		key, err := p.quoted(c)
		if err != nil {
			return Segment{}, err
		}
		seg = Key(key)
	case c >= '0' && c <= '9':
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			p.pos++
		}
		n, err := strconv.Atoi(p.input[start:p.pos])
		if err != nil {
			return Segment{}, &SyntaxError{Input: p.input, Offset: start, Message: "index out of range", Cause: err}
		}
		seg = Index(n)
	default:
		return Segment{}, p.fail("expected quoted key or index")
	}

	if p.pos >= len(p.input) || p.input[p.pos] != ']' {
		return Segment{}, p.fail("expected ']'")
	}
	p.pos++
	return seg, nil
}

func (p *parser) quoted(quote byte) (string, error) {
	p.pos++ // opening quote
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return "", p.fail("unterminated escape")
			}
			switch e := p.input[p.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '\'', '"':
				sb.WriteByte(e)
			case 'x', 'u', 'U':
				r, err := p.hexEscape(e)
				if err != nil {
					return "", err
				}
				sb.WriteRune(r)
				continue
			default:
				sb.WriteByte('\\')
				sb.WriteByte(e)
			}
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", p.fail("unterminated key")
}

// hexEscapeWidth is the number of hex digits following each escape letter.
var hexEscapeWidth = map[byte]int{'x': 2, 'u': 4, 'U': 8}

// hexEscape decodes the digits of a \x, \u or \U escape. p.pos is on the
// escape letter and is left after the last digit.
func (p *parser) hexEscape(letter byte) (rune, error) {
	start := p.pos + 1
	end := start + hexEscapeWidth[letter]
	if end > len(p.input) {
		return 0, p.fail("truncated \\" + string(letter) + " escape")
	}
	n, err := strconv.ParseUint(p.input[start:end], 16, 32)
	if err != nil || n > unicode.MaxRune {
		return 0, &SyntaxError{Input: p.input, Offset: start, Message: "invalid \\" + string(letter) + " escape", Cause: err}
	}
	p.pos = end
	return rune(n), nil
}
