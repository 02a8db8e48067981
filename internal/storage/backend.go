// Package storage keeps whole JSON documents behind a swappable backend.
//
// A Document is read once when it is opened and then served from memory.
// Every mutation goes through Document.Commit, which serializes writers,
// rewrites the full document through the backend and only then publishes
// the new snapshot.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when no document with that name exists
var ErrNotFound = errors.New("document not found")

// Backend reads and writes raw document bodies by name.
// Names look like "notes/users"; backends map them onto files, rows, keys or objects.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, body []byte) error
}
