package payment

import (
	"bytes"
	"fmt"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/boldrelay/internal/xjson"
)

// Literal holds a scalar JSON value as the exact text the caller sent.
// Amounts and user ids arrive as numbers or strings depending on the client.
// Text gives the form the signature covers.
type Literal struct {
	raw    string
	quoted bool
}

var (
	_ go_json.Unmarshaler = (*Literal)(nil)
	_ go_json.Marshaler   = Literal{}
)

func NumberLiteral(s string) Literal { return Literal{raw: s} }
func StringLiteral(s string) Literal { return Literal{raw: s, quoted: true} }

func (l Literal) String() string { return l.raw }
func (l Literal) IsZero() bool   { return l.raw == "" }

// Text renders the value the way a template literal does: strings as is,
// numbers in their shortest ECMAScript form (10000.50 becomes 10000.5).
func (l Literal) Text() string {
	if l.quoted || l.raw == "" {
		return l.raw
	}
	s, err := xjson.NormalizeNumber(l.raw)
	if err != nil {
		return l.raw
	}
	return s
}

// Truthy is false for null, the empty string and numeric zero.
func (l Literal) Truthy() bool {
	if l.quoted {
		return l.raw != ""
	}
	return l.raw != "" && l.Text() != "0"
}

// normalized replaces number text with its Text form.
func (l Literal) normalized() Literal {
	if l.quoted {
		return l
	}
	return Literal{raw: l.Text()}
}

func (l *Literal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = Literal{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := go_json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode string literal: %w", err)
		}
		*l = StringLiteral(s)
		return nil
	}

	if !xjson.IsNumber(string(data)) {
		return fmt.Errorf("expected a number or a string, got %s", data)
	}
	*l = NumberLiteral(string(data))
	return nil
}

func (l Literal) MarshalJSON() ([]byte, error) {
	if l.raw == "" {
		return []byte("null"), nil
	}
	if l.quoted || !xjson.IsNumber(l.raw) {
		return go_json.Marshal(l.raw)
	}
	return []byte(l.raw), nil
}
