package denylist

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses the external reader's JSON output into a loosely typed
// payload. Numbers are kept as json.Number so reason codes survive verbatim.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode deny-list payload: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode deny-list payload: trailing data after JSON value")
	}
	return payload, nil
}

// jsonValue rebuilds payload from its JSON encoding so that only
// encoding/json types remain (map[string]any, []any, json.Number, ...). The
// result shares no memory with the input. Values that cannot be encoded
// become nil.
func jsonValue(payload any) any {
	if payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	v, err := Decode(raw)
	if err != nil {
		return nil
	}
	return v
}
