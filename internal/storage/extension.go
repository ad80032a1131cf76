package storage

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ExtensionState carries raw JSON fields a record does not model, so they survive
// a load/save cycle untouched.
type ExtensionState map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (e *ExtensionState) Set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", key, err)
	}

	if *e == nil {
		*e = ExtensionState{}
	}
	(*e)[key] = b
	return nil
}

// Get unmarshals the value at key into out. found is false when the key is absent.
func (e ExtensionState) Get(key string, out any) (found bool, err error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

// Delete removes key, if present.
func (e ExtensionState) Delete(key string) {
	delete(e, key)
}

// Keys returns the stored keys in sorted order.
func (e ExtensionState) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Extract moves every entry of raw whose key is not in known into a new
// ExtensionState. It returns nil when nothing is left over.
func Extract(raw map[string]json.RawMessage, known ...string) ExtensionState {
	var e ExtensionState
	for k, v := range raw {
		if slices.Contains(known, k) {
			continue
		}
		if e == nil {
			e = ExtensionState{}
		}
		e[k] = v
	}
	return e
}
