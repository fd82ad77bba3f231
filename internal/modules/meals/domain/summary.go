package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

type MenuCount struct {
	Type  string
	Count int
}

// Summary is the console digest of the first day in a payload.
type Summary struct {
	HasItems bool
	Date     string
	Menus    []MenuCount
}

// Summarize reads items[0].date and items[0].menus. Anything missing or of
// an unexpected shape is skipped rather than reported.
func Summarize(p Payload) Summary {
	var root struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(p.raw, &root); err != nil || len(root.Items) == 0 {
		return Summary{}
	}
	out := Summary{HasItems: true}
	var first struct {
		Date  json.RawMessage `json:"date"`
		Menus json.RawMessage `json:"menus"`
	}
	if err := json.Unmarshal(root.Items[0], &first); err != nil {
		return out
	}
	out.Date = textValue(first.Date)
	out.Menus = countMenus(first.Menus)
	return out
}

func textValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// countMenus walks the menus object in document order and counts every
// non-empty list.
func countMenus(raw json.RawMessage) []MenuCount {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	var out []MenuCount
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return out
		}
		key, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return out
		}
		var entries []json.RawMessage
		if err := json.Unmarshal(value, &entries); err != nil || len(entries) == 0 {
			continue
		}
		out = append(out, MenuCount{Type: key, Count: len(entries)})
	}
	return out
}
