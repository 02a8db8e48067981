package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var emptyDocument = []byte("{}")

// Document is an in-memory snapshot of one JSON document of type T
type Document[T any] struct {
	name    string
	backend Backend

	mu  sync.Mutex // serializes Commit
	raw []byte     // last committed body, guarded by rmu
	rmu sync.RWMutex
}

// Open reads the named document from backend.
// A missing or malformed document is treated as empty; only backend I/O failures are returned.
func Open[T any](ctx context.Context, backend Backend, name string) (*Document[T], error) {
	body, err := backend.Read(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		body = emptyDocument
	case err != nil:
		return nil, fmt.Errorf("read document %s: %w", name, err)
	}

	var probe T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || json.Unmarshal(trimmed, &probe) != nil {
		if len(trimmed) > 0 {
			logrus.WithField("document", name).Warn("Malformed document, starting empty")
		}
		body = emptyDocument
	}

	return &Document[T]{name: name, backend: backend, raw: body}, nil
}

// Name returns the document name
func (d *Document[T]) Name() string { return d.name }

// Load returns an independent copy of the current snapshot
func (d *Document[T]) Load() (T, error) {
	d.rmu.RLock()
	raw := d.raw
	d.rmu.RUnlock()
	return decode[T](raw)
}

// Commit applies fn to a copy of the current snapshot and persists the result.
// If fn or the write fails the snapshot is left untouched.
func (d *Document[T]) Commit(ctx context.Context, fn func(v *T) error) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	v, err := d.Load()
	if err != nil {
		return zero, err
	}
	if err := fn(&v); err != nil {
		return zero, err
	}

	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zero, fmt.Errorf("encode document %s: %w", d.name, err)
	}
	if err := d.backend.Write(ctx, d.name, body); err != nil {
		return zero, fmt.Errorf("write document %s: %w", d.name, err)
	}

	d.rmu.Lock()
	d.raw = body
	d.rmu.Unlock()
	return v, nil
}

func decode[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode document: %w", err)
	}
	return v, nil
}
