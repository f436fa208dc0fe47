// Package xjson reads and writes JSON the way an ECMAScript runtime does.
//
// Parse builds the value JSON.parse would build: strict RFC 8259 grammar,
// duplicate keys collapse to the last value at the first key's position and
// integer-like keys move to the front in ascending order. Stringify writes
// that value back the way JSON.stringify does.
package xjson

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

var ErrSyntax = errors.New("invalid JSON")

type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a parsed JSON value. Text holds the literal of a number or the
// decoded contents of a string. Lone UTF-16 surrogates from \u escapes are
// kept as their 3-byte generalized UTF-8 form so they survive a round trip.
type Value struct {
	Kind    Kind
	Bool    bool
	Text    string
	Items   []Value
	Members []Member
}

type Member struct {
	Key   string
	Value Value
}

const maxDepth = 10000

func Parse(data []byte) (Value, error) {
	p := parser{data: data}
	p.skipSpace()
	v, err := p.value(0)
	if err != nil {
		return Value{}, err
	}
	p.skipSpace()
	if p.pos != len(p.data) {
		return Value{}, p.errorf("unexpected data after top-level value")
	}
	return v, nil
}

// IsNumber reports whether s is a JSON number literal.
func IsNumber(s string) bool {
	p := parser{data: []byte(s)}
	_, err := p.number()
	return err == nil && p.pos == len(p.data)
}

// Field returns the member named key of an object.
func (v Value) Field(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Lookup walks nested objects. A missing step yields null.
func (v Value) Lookup(path ...string) Value {
	for _, key := range path {
		next, ok := v.Field(key)
		if !ok {
			return Value{}
		}
		v = next
	}
	return v
}

// Scalar is the string a template literal would produce for a string,
// number or boolean. Null, arrays and objects yield "".
func (v Value) Scalar() string {
	switch v.Kind {
	case KindString:
		return v.Text
	case KindNumber:
		s, err := NormalizeNumber(v.Text)
		if err != nil {
			return v.Text
		}
		return s
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrSyntax, fmt.Sprintf(format, args...), p.pos)
}

func (p *parser) peek() byte {
	if p.pos >= len(p.data) {
		return 0
	}
	return p.data[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) value(depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, p.errorf("nesting too deep")
	}
	if p.pos >= len(p.data) {
		return Value{}, p.errorf("unexpected end of input")
	}
	switch c := p.data[p.pos]; {
	case c == '{':
		return p.object(depth)
	case c == '[':
		return p.array(depth)
	case c == '"':
		s, err := p.string()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindString, Text: s}, nil
	case c == '-' || isDigit(c):
		return p.number()
	default:
		return p.literal()
	}
}

var literals = []struct {
	text  []byte
	value Value
}{
	{text: []byte("true"), value: Value{Kind: KindBool, Bool: true}},
	{text: []byte("false"), value: Value{Kind: KindBool}},
	{text: []byte("null"), value: Value{Kind: KindNull}},
}

func (p *parser) literal() (Value, error) {
	for _, lit := range literals {
		if bytes.HasPrefix(p.data[p.pos:], lit.text) {
			p.pos += len(lit.text)
			return lit.value, nil
		}
	}
	return Value{}, p.errorf("unexpected character %q", p.data[p.pos])
}

func (p *parser) number() (Value, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	switch c := p.peek(); {
	case c == '0':
		p.pos++
	case c >= '1' && c <= '9':
		p.digits()
	default:
		return Value{}, p.errorf("invalid number")
	}
	if p.peek() == '.' {
		p.pos++
		if !isDigit(p.peek()) {
			return Value{}, p.errorf("invalid number fraction")
		}
		p.digits()
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if !isDigit(p.peek()) {
			return Value{}, p.errorf("invalid number exponent")
		}
		p.digits()
	}
	return Value{Kind: KindNumber, Text: string(p.data[start:p.pos])}, nil
}

func (p *parser) digits() {
	for isDigit(p.peek()) {
		p.pos++
	}
}

func (p *parser) string() (string, error) {
	p.pos++
	var b []byte
	for {
		if p.pos >= len(p.data) {
			return "", p.errorf("unterminated string")
		}
		c := p.data[p.pos]
		switch {
		case c == '"':
			p.pos++
			return string(b), nil
		case c == '\\':
			var err error
			if b, err = p.escape(b); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", p.errorf("control character in string")
		case c < utf8.RuneSelf:
			b = append(b, c)
			p.pos++
		default:
			r, size := utf8.DecodeRune(p.data[p.pos:])
			if r == utf8.RuneError && size == 1 {
				b = utf8.AppendRune(b, utf8.RuneError)
			} else {
				b = append(b, p.data[p.pos:p.pos+size]...)
			}
			p.pos += size
		}
	}
}

func (p *parser) escape(b []byte) ([]byte, error) {
	p.pos++
	if p.pos >= len(p.data) {
		return nil, p.errorf("unterminated string")
	}
	e := p.data[p.pos]
	p.pos++
	switch e {
	case '"', '\\', '/':
		return append(b, e), nil
	case 'b':
		return append(b, '\b'), nil
	case 'f':
		return append(b, '\f'), nil
	case 'n':
		return append(b, '\n'), nil
	case 'r':
		return append(b, '\r'), nil
	case 't':
		return append(b, '\t'), nil
	case 'u':
		r, err := p.hex4()
		if err != nil {
			return nil, err
		}
		if r >= 0xd800 && r < 0xdc00 && bytes.HasPrefix(p.data[p.pos:], []byte(`\u`)) {
			save := p.pos
			p.pos += 2
			if low, err := p.hex4(); err == nil && low >= 0xdc00 && low <= 0xdfff {
				return utf8.AppendRune(b, utf16.DecodeRune(r, low)), nil
			}
			p.pos = save
		}
		return appendWTF8(b, r), nil
	default:
		p.pos--
		return nil, p.errorf("invalid escape %q", e)
	}
}

func (p *parser) hex4() (rune, error) {
	if p.pos+4 > len(p.data) {
		return 0, p.errorf("truncated unicode escape")
	}
	var r rune
	for _, c := range p.data[p.pos : p.pos+4] {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, p.errorf("invalid unicode escape")
		}
		r = r<<4 | rune(d)
	}
	p.pos += 4
	return r, nil
}

func (p *parser) array(depth int) (Value, error) {
	p.pos++
	v := Value{Kind: KindArray, Items: []Value{}}
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return v, nil
	}
	for {
		p.skipSpace()
		item, err := p.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, item)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return v, nil
		default:
			return Value{}, p.errorf("expected ',' or ']' in array")
		}
	}
}

func (p *parser) object(depth int) (Value, error) {
	p.pos++
	v := Value{Kind: KindObject, Members: []Member{}}
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return v, nil
	}
	seen := make(map[string]int)
	for {
		p.skipSpace()
		if p.peek() != '"' {
			return Value{}, p.errorf("expected object key")
		}
		key, err := p.string()
		if err != nil {
			return Value{}, err
		}
		p.skipSpace()
		if p.peek() != ':' {
			return Value{}, p.errorf("expected ':' after object key")
		}
		p.pos++
		p.skipSpace()
		val, err := p.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		if i, ok := seen[key]; ok {
			v.Members[i].Value = val
		} else {
			seen[key] = len(v.Members)
			v.Members = append(v.Members, Member{Key: key, Value: val})
		}
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			orderMembers(v.Members)
			return v, nil
		default:
			return Value{}, p.errorf("expected ',' or '}' in object")
		}
	}
}

// orderMembers puts array-index keys first in ascending numeric order and
// keeps every other key in insertion order.
func orderMembers(members []Member) {
	slices.SortStableFunc(members, func(a, b Member) int {
		ai, aok := arrayIndex(a.Key)
		bi, bok := arrayIndex(b.Key)
		switch {
		case aok && bok:
			return cmp.Compare(ai, bi)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
}

const maxArrayIndex = 1<<32 - 2

func arrayIndex(key string) (uint64, bool) {
	if key == "" || len(key) > 10 || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if !isDigit(key[i]) {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n > maxArrayIndex {
		return 0, false
	}
	return n, true
}

func appendWTF8(b []byte, r rune) []byte {
	if r >= 0xd800 && r <= 0xdfff {
		return append(b, 0xe0|byte(r>>12), 0x80|byte(r>>6)&0x3f, 0x80|byte(r)&0x3f)
	}
	return utf8.AppendRune(b, r)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
