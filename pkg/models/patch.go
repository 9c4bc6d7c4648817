package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPatch is returned when a patch value cannot be stored in the
// target field (wrong JSON type, malformed timestamp, ...).
var ErrInvalidPatch = errors.New("invalid patch")

// Patch is a partial update keyed by JSON field name.
type Patch map[string]json.RawMessage

// ApplyPatch overlays the keys present in p onto current, one top-level
// field at a time. Nested JSON values are replaced, never merged. The
// "id" key is ignored and unknown keys are dropped.
func ApplyPatch[T any](current T, p Patch) (T, error) {
	base, err := json.Marshal(current)
	if err != nil {
		return current, fmt.Errorf("encode current: %w", err)
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &fields); err != nil {
		return current, fmt.Errorf("decode current: %w", err)
	}
	for k, v := range p {
		if k == "id" {
			continue
		}
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return current, fmt.Errorf("encode merged: %w", err)
	}

	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return current, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	return out, nil
}

// SyncCompletion keeps a completion timestamp consistent with its flag.
// When the flag is off the timestamp is cleared. When it is on, prev (the
// stamp stored before this write, nil on create) wins over whatever the
// write carried, and a missing stamp is set to now. Repeating the same
// update therefore yields the same record.
func SyncCompletion(done bool, prev *time.Time, at **time.Time, now time.Time) {
	switch {
	case !done:
		*at = nil
	case prev != nil:
		t := *prev
		*at = &t
	case *at == nil:
		t := now
		*at = &t
	}
}
