// Package records keeps ordered, owner-scoped record lists in one document.
package records

import (
	"context"
	"fmt"
	"slices"
	"time"

	"record_store/internal/domain"
	"record_store/internal/storage"

	"github.com/google/uuid"
)

// Record is anything with a stable identity
type Record interface {
	Key() string
}

// Owned is the persisted shape: owner username -> records in insertion order
type Owned[T Record] map[string][]T

// Store is a per-owner CRUD view over an Owned document.
// A record is only reachable through its owner's username.
type Store[T Record] struct {
	doc      *storage.Document[Owned[T]]
	resource string // used in NotFound errors, e.g. "Note"
	newID    func() string
	now      func() time.Time
}

// NewStore wraps an opened document
func NewStore[T Record](doc *storage.Document[Owned[T]], resource string) *Store[T] {
	return &Store[T]{
		doc:      doc,
		resource: resource,
		newID:    uuid.NewString,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Append builds a record with a fresh identity and adds it to owner's list
func (s *Store[T]) Append(ctx context.Context, owner string, create func(id string, now time.Time) T) (T, error) {
	rec := create(s.newID(), s.now())
	_, err := s.doc.Commit(ctx, func(all *Owned[T]) error {
		(*all)[owner] = append((*all)[owner], rec)
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// List returns owner's records; an owner without records gets an empty slice
func (s *Store[T]) List(_ context.Context, owner string) ([]T, error) {
	all, err := s.doc.Load()
	if err != nil {
		return nil, err
	}
	list := all[owner]
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// Get returns one of owner's records
func (s *Store[T]) Get(ctx context.Context, owner, id string) (T, error) {
	list, err := s.List(ctx, owner)
	if err != nil {
		var zero T
		return zero, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	var zero T
	return zero, s.notFound(id)
}

// Update applies a change to one of owner's records and persists it.
// apply receives the current time so it can refresh a modification timestamp.
func (s *Store[T]) Update(ctx context.Context, owner, id string, apply func(rec *T, now time.Time) error) (T, error) {
	var updated T
	_, err := s.doc.Commit(ctx, func(all *Owned[T]) error {
		list := (*all)[owner]
		i := indexOf(list, id)
		if i < 0 {
			return s.notFound(id)
		}
		if err := apply(&list[i], s.now()); err != nil {
			return err
		}
		updated = list[i]
		return nil
	})
	return updated, err
}

// Delete removes one of owner's records
func (s *Store[T]) Delete(ctx context.Context, owner, id string) error {
	_, err := s.doc.Commit(ctx, func(all *Owned[T]) error {
		list := (*all)[owner]
		i := indexOf(list, id)
		if i < 0 {
			return s.notFound(id)
		}
		(*all)[owner] = slices.Delete(list, i, i+1)
		return nil
	})
	return err
}

// Clear removes every record of owner in one commit and returns what was removed
func (s *Store[T]) Clear(ctx context.Context, owner string) ([]T, error) {
	var removed []T
	_, err := s.doc.Commit(ctx, func(all *Owned[T]) error {
		removed = (*all)[owner]
		if len(removed) == 0 {
			return nil
		}
		(*all)[owner] = []T{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if removed == nil {
		removed = []T{}
	}
	return removed, nil
}

func (s *Store[T]) notFound(id string) error {
	return fmt.Errorf("%s %s: %w", s.resource, id, domain.NotFound(s.resource))
}

func indexOf[T Record](list []T, id string) int {
	return slices.IndexFunc(list, func(r T) bool { return r.Key() == id })
}
