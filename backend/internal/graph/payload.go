package graph

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// timestampLayout is fixed width so that string order in the store matches
// chronological order.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Params is the structured form of an action's input key/value map
type Params map[string]any

// Keys returns the parameter names in sorted order
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EncodeParams serializes params; nil encodes as an empty object
func EncodeParams(p Params) (string, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode parameters: %w", err)
	}
	return string(b), nil
}

// DecodeParams parses a stored parameter map. Empty input yields an empty map.
func DecodeParams(s string) (Params, error) {
	p := Params{}
	if s == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	if p == nil {
		// stored "null"
		p = Params{}
	}
	return p, nil
}

// EncodeResult serializes an arbitrary result payload; nil encodes as an
// empty object
func EncodeResult(v any) (string, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}

// DecodeResult parses a stored result payload
func DecodeResult(s string) (any, error) {
	if s == "" {
		return map[string]any{}, nil
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return v, nil
}

// FormatTimestamp renders t the way timestamps are stored in the graph
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses a stored timestamp
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
