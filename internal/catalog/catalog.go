// Package catalog keeps app-global entries (products, job listings) keyed by id.
package catalog

import (
	"context"
	"fmt"
	"time"

	"record_store/internal/cache"
	"record_store/internal/domain"
	"record_store/internal/storage"

	"github.com/sirupsen/logrus"
)

// CacheTTL bounds how stale a cached listing may be
const CacheTTL = 60 * time.Second

// Entries is the persisted shape: key -> entry
type Entries[T any] map[string]T

// Catalog reads through an optional cache and invalidates it after every mutation
type Catalog[T any] struct {
	doc      *storage.Document[Entries[T]]
	cache    *cache.Cache
	resource string
}

// New wraps an opened document; c may be nil
func New[T any](doc *storage.Document[Entries[T]], c *cache.Cache, resource string) *Catalog[T] {
	return &Catalog[T]{doc: doc, cache: c, resource: resource}
}

func (c *Catalog[T]) cacheKey() string { return "catalog:" + c.doc.Name() }

// List returns every entry
func (c *Catalog[T]) List(ctx context.Context) (Entries[T], error) {
	var cached Entries[T]
	if found, err := c.cache.Get(ctx, c.cacheKey(), &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		logrus.WithError(err).WithField("key", c.cacheKey()).Warn("Catalog cache read failed")
	}

	entries, err := c.doc.Load()
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, c.cacheKey(), entries, CacheTTL) // Best effort
	return entries, nil
}

// Get returns one entry
func (c *Catalog[T]) Get(_ context.Context, key string) (T, error) {
	entries, err := c.doc.Load()
	if err != nil {
		var zero T
		return zero, err
	}
	entry, ok := entries[key]
	if !ok {
		var zero T
		return zero, domain.NotFound(c.resource)
	}
	return entry, nil
}

// Create adds an entry; an existing key fails with domain.ErrDuplicateEntry
func (c *Catalog[T]) Create(ctx context.Context, key string, entry T) error {
	_, err := c.doc.Commit(ctx, func(entries *Entries[T]) error {
		if _, exists := (*entries)[key]; exists {
			return fmt.Errorf("%s %s: %w", c.resource, key, domain.ErrDuplicateEntry)
		}
		(*entries)[key] = entry
		return nil
	})
	if err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update changes one entry in place
func (c *Catalog[T]) Update(ctx context.Context, key string, apply func(entry *T) error) (T, error) {
	var updated T
	_, err := c.doc.Commit(ctx, func(entries *Entries[T]) error {
		entry, ok := (*entries)[key]
		if !ok {
			return domain.NotFound(c.resource)
		}
		if err := apply(&entry); err != nil {
			return err
		}
		(*entries)[key] = entry
		updated = entry
		return nil
	})
	if err != nil {
		return updated, err
	}
	c.invalidate(ctx)
	return updated, nil
}

func (c *Catalog[T]) invalidate(ctx context.Context) {
	if err := c.cache.Delete(ctx, c.cacheKey()); err != nil {
		logrus.WithError(err).WithField("key", c.cacheKey()).Warn("Catalog cache invalidation failed")
	}
}
