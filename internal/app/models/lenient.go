package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The model sometimes quotes numbers or emits numbers where text belongs.
// These helpers read a raw field by what it contains instead of failing the
// whole payload on a type mismatch.

func decodeLoose(raw json.RawMessage) (any, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || v == nil {
		return nil, false
	}
	return v, true
}

// looseString returns a JSON string as is and numbers or booleans as their
// literal text. Anything else is "".
func looseString(raw json.RawMessage) string {
	v, ok := decodeLoose(raw)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// looseFloat accepts a JSON number or a numeric string.
func looseFloat(raw json.RawMessage) (float64, bool) {
	v, ok := decodeLoose(raw)
	if !ok {
		return 0, false
	}
	var text string
	switch n := v.(type) {
	case json.Number:
		text = n.String()
	case string:
		text = strings.TrimSpace(n)
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// looseInt accepts an integral number or a string holding one; otherwise 0.
func looseInt(raw json.RawMessage) int {
	f, ok := looseFloat(raw)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// looseStrings reads a list of names. A lone string counts as a one-element
// list and non-text elements are dropped.
func looseStrings(raw json.RawMessage) []string {
	v, ok := decodeLoose(raw)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case string:
		return []string{list}
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			switch s := e.(type) {
			case string:
				out = append(out, s)
			case json.Number:
				out = append(out, s.String())
			}
		}
		return out
	default:
		return nil
	}
}

// looseList decodes an array element by element, skipping elements that do
// not decode. A missing or non-array value yields nil.
func looseList[T any](raw json.RawMessage) []T {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil
	}
	out := make([]T, 0, len(elems))
	for _, e := range elems {
		var v T
		if err := json.Unmarshal(e, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
