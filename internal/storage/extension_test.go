package storage

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestExtensionState_Set(t *testing.T) {
	tests := map[string]struct {
		initial ExtensionState
		value   any
		expErr  bool
	}{
		"set on nil map":      {initial: nil, value: map[string]string{"foo": "bar"}},
		"set on existing map": {initial: ExtensionState{}, value: 42},
		"marshal error":       {initial: ExtensionState{}, value: make(chan int), expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := tt.initial
			err := e.Set("key", tt.value)

			if tt.expErr {
				testutil.AssertErrorContains(t, err, `marshal extension "key"`)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := e["key"]; !ok {
				t.Error("expected key to be stored")
			}
		})
	}
}

func TestExtensionState_Get(t *testing.T) {
	e := ExtensionState{
		"luck": json.RawMessage(`5`),
		"bad":  json.RawMessage(`"text"`),
	}

	var luck int
	found, err := e.Get("luck", &luck)
	testutil.AssertEqual(t, "found", found, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "luck", luck, 5)

	found, err = e.Get("missing", &luck)
	testutil.AssertEqual(t, "found missing", found, false)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	var n int
	found, err = e.Get("bad", &n)
	testutil.AssertEqual(t, "found bad", found, true)
	testutil.AssertErrorContains(t, err, "unmarshal extension")

	var nilState ExtensionState
	found, _ = nilState.Get("luck", &n)
	testutil.AssertEqual(t, "found in nil", found, false)
}

func TestExtract(t *testing.T) {
	raw := map[string]json.RawMessage{
		"id":    json.RawMessage(`"1"`),
		"Level": json.RawMessage(`3`),
		"luck":  json.RawMessage(`5`),
		"title": json.RawMessage(`"Sir"`),
	}

	e := Extract(raw, "id", "Level")
	if !slices.Equal(e.Keys(), []string{"luck", "title"}) {
		t.Errorf("unexpected keys %v", e.Keys())
	}

	if Extract(raw, "id", "Level", "luck", "title") != nil {
		t.Error("expected nil when every key is known")
	}

	e.Delete("luck")
	testutil.AssertEqual(t, "len after delete", len(e), 1)
}
