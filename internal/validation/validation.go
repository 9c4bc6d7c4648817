// Package validation checks creation payloads against the JSON Schemas
// embedded in package db. Schemas are compiled once and cached by kind.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"
)

// ErrUnknownSchema is returned when no schema is registered for a kind.
var ErrUnknownSchema = errors.New("unknown schema")

const schemaDir = "schemas"

// FieldError is one validation failure as returned to API clients.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Validator loads and caches compiled JSON schemas keyed by record kind.
type Validator struct {
	src   fs.FS
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// New compiles every schemas/*.json file in src. The file name without
// extension is the kind it validates.
func New(src fs.FS) (*Validator, error) {
	v := &Validator{
		src:   src,
		cache: make(map[string]*jsonschema.Schema),
	}
	// initial load
	if err := v.Reload(); err != nil {
		return nil, err
	}

	return v, nil
}

// Reload recompiles all schemas from the source filesystem.
func (v *Validator) Reload() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	entries, err := fs.ReadDir(v.src, schemaDir)
	if err != nil {
		return fmt.Errorf("load schemas: %w", err)
	}

	newCache := make(map[string]*jsonschema.Schema)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		kind := strings.TrimSuffix(e.Name(), ".json")

		b, err := fs.ReadFile(v.src, path.Join(schemaDir, e.Name()))
		if err != nil {
			return fmt.Errorf("read schema %s: %w", kind, err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return fmt.Errorf("compile schema %s: %w", kind, err)
		}

		newCache[kind] = rs
	}

	v.cache = newCache
	return nil
}

// Kinds reports the kinds that have a schema.
func (v *Validator) Kinds() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]string, 0, len(v.cache))
	for k := range v.cache {
		out = append(out, k)
	}
	return out
}

// Validate checks body against the schema for kind. A nil slice means the
// document is valid. Malformed JSON is reported as a single FieldError at
// the document root rather than as an error.
func (v *Validator) Validate(ctx context.Context, kind string, body []byte) ([]FieldError, error) {
	v.mu.RLock()
	rs, ok := v.cache[kind]
	v.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, kind)
	}

	if !json.Valid(body) {
		return []FieldError{{Path: "/", Message: "body is not valid JSON"}}, nil
	}

	kerrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", kind, err)
	}
	if len(kerrs) == 0 {
		return nil, nil
	}

	out := make([]FieldError, 0, len(kerrs))
	for _, ke := range kerrs {
		p := ke.PropertyPath
		if p == "" {
			p = "/"
		}
		out = append(out, FieldError{Path: p, Message: ke.Message})
	}
	return out, nil
}
