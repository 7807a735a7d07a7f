package models

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
)

// Attribute holds the raw JSON value of one profile field.
// The zero value means the field was absent from the request.
type Attribute struct {
	raw json.RawMessage
}

func NewAttribute(raw json.RawMessage) Attribute {
	return Attribute{raw: append(json.RawMessage(nil), raw...)}
}

// StringAttribute is a convenience for building requests in code (CLI, tests).
func StringAttribute(s string) Attribute {
	b, _ := json.Marshal(s)
	return Attribute{raw: b}
}

func (a Attribute) Present() bool {
	return a.raw != nil
}

func (a *Attribute) UnmarshalJSON(b []byte) error {
	a.raw = append(a.raw[:0], b...)
	return nil
}

func (a Attribute) MarshalJSON() ([]byte, error) {
	if a.raw == nil {
		return []byte("null"), nil
	}
	return a.raw, nil
}

// String renders the value the way it reads in a sentence: strings without
// quotes, integers as written, floats in Python repr form, true/false/null
// as True/False/None and containers in their literal list/dict form.
func (a Attribute) String() string {
	if a.raw == nil {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(a.raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return string(a.raw)
	}
	if s, ok := tok.(string); ok {
		return s
	}

	var sb strings.Builder
	if err := writeLiteral(&sb, dec, tok); err != nil && err != io.EOF {
		return string(a.raw)
	}
	return sb.String()
}

func writeLiteral(sb *strings.Builder, dec *json.Decoder, tok json.Token) error {
	switch v := tok.(type) {
	case nil:
		sb.WriteString("None")
	case bool:
		if v {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case json.Number:
		sb.WriteString(formatNumber(v.String()))
	case string:
		sb.WriteString(quote(v))
	case json.Delim:
		switch v {
		case '[':
			sb.WriteByte('[')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					sb.WriteString(", ")
				}
				next, err := dec.Token()
				if err != nil {
					return err
				}
				if err := writeLiteral(sb, dec, next); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			sb.WriteByte(']')
		case '{':
			sb.WriteByte('{')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					sb.WriteString(", ")
				}
				key, err := dec.Token()
				if err != nil {
					return err
				}
				sb.WriteString(quote(key.(string)))
				sb.WriteString(": ")
				next, err := dec.Token()
				if err != nil {
					return err
				}
				if err := writeLiteral(sb, dec, next); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			sb.WriteByte('}')
		}
	}
	return nil
}

// formatNumber keeps integers as written and prints floats the way Python's
// repr does: shortest round-trip digits, a trailing ".0" for whole values and
// exponent form below 1e-4 or from 1e16 up.
func formatNumber(lit string) string {
	if !strings.ContainsAny(lit, ".eE") {
		if lit == "-0" {
			return "0"
		}
		return lit
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !math.IsInf(f, 0) {
		return lit
	}
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// 작은따옴표 우선, 문자열에 작은따옴표만 있으면 큰따옴표 사용
func quote(s string) string {
	q := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = `"`
	}
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`, q, `\`+q)
	return q + r.Replace(s) + q
}
