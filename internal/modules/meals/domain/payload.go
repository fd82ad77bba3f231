package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Payload is the menu document exactly as the API returned it. Writing it
// out keeps key order and number literals.
type Payload struct {
	raw json.RawMessage
}

func NewPayload(raw []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return Payload{}, fmt.Errorf("payload is not valid JSON")
	}
	return Payload{raw: append(json.RawMessage(nil), trimmed...)}, nil
}

func (p Payload) Raw() []byte {
	return p.raw
}

// Indent renders the payload with two-space indentation. Key order and
// number literals are kept as received; strings are re-encoded so escaped
// non-ASCII text comes out as the characters themselves.
func (p Payload) Indent() ([]byte, error) {
	if len(p.raw) == 0 {
		return []byte("null"), nil
	}
	dec := json.NewDecoder(bytes.NewReader(p.raw))
	dec.UseNumber()
	w := &indenter{dec: dec}
	w.enc = json.NewEncoder(&w.scratch)
	w.enc.SetEscapeHTML(false)
	if err := w.value(0); err != nil {
		return nil, fmt.Errorf("indent payload: %w", err)
	}
	return w.out.Bytes(), nil
}

type indenter struct {
	dec     *json.Decoder
	enc     *json.Encoder
	scratch bytes.Buffer
	out     bytes.Buffer
}

func (w *indenter) value(depth int) error {
	tok, err := w.dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		return w.container(v, depth)
	case string:
		return w.str(v)
	case json.Number:
		w.out.WriteString(v.String())
	case bool:
		w.out.WriteString(strconv.FormatBool(v))
	case nil:
		w.out.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
	return nil
}

func (w *indenter) container(open json.Delim, depth int) error {
	closing := byte(']')
	if open == '{' {
		closing = '}'
	}
	w.out.WriteByte(byte(open))
	n := 0
	for w.dec.More() {
		if n > 0 {
			w.out.WriteByte(',')
		}
		w.newline(depth + 1)
		if open == '{' {
			tok, err := w.dec.Token()
			if err != nil {
				return err
			}
			key, ok := tok.(string)
			if !ok {
				return fmt.Errorf("object key is %T, not a string", tok)
			}
			if err := w.str(key); err != nil {
				return err
			}
			w.out.WriteString(": ")
		}
		if err := w.value(depth + 1); err != nil {
			return err
		}
		n++
	}
	if _, err := w.dec.Token(); err != nil {
		return err
	}
	if n > 0 {
		w.newline(depth)
	}
	w.out.WriteByte(closing)
	return nil
}

func (w *indenter) str(s string) error {
	w.scratch.Reset()
	if err := w.enc.Encode(s); err != nil {
		return err
	}
	w.out.Write(bytes.TrimSuffix(w.scratch.Bytes(), []byte("\n")))
	return nil
}

func (w *indenter) newline(depth int) {
	w.out.WriteByte('\n')
	for i := 0; i < depth; i++ {
		w.out.WriteString("  ")
	}
}

// IsEmpty reports whether the document carries no data: null, an empty
// object, array or string, false, or zero.
func (p Payload) IsEmpty() bool {
	if len(p.raw) == 0 {
		return true
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, p.raw); err != nil {
		return true
	}
	switch s := buf.String(); s {
	case "null", "{}", "[]", `""`, "false":
		return true
	default:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f == 0
		}
		return false
	}
}
