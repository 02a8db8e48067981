package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counters map[string]int

func TestOpen_MissingDocumentIsEmpty(t *testing.T) {
	doc, err := Open[counters](context.Background(), NewFileBackend(t.TempDir()), "app/counters")
	require.NoError(t, err)

	v, err := doc.Load()
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.NotNil(t, v)
}

func TestOpen_MalformedDocumentIsEmpty(t *testing.T) {
	for name, body := range map[string]string{
		"garbage": "{not json",
		"array":   "[1,2,3]",
		"null":    "null",
		"blank":   "  \n",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "counters.json"), []byte(body), 0o644))

			doc, err := Open[counters](context.Background(), NewFileBackend(dir), "counters")
			require.NoError(t, err)

			v, err := doc.Load()
			require.NoError(t, err)
			assert.Empty(t, v)

			_, err = doc.Commit(context.Background(), func(v *counters) error {
				(*v)["a"]++
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestCommit_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	backend := NewFileBackend(t.TempDir())

	doc, err := Open[counters](ctx, backend, "counters")
	require.NoError(t, err)

	got, err := doc.Commit(ctx, func(v *counters) error {
		(*v)["a"] = 1
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, counters{"a": 1}, got)

	reopened, err := Open[counters](ctx, backend, "counters")
	require.NoError(t, err)
	v, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, counters{"a": 1}, v)
}

func TestCommit_FailedMutationLeavesSnapshot(t *testing.T) {
	ctx := context.Background()
	doc, err := Open[counters](ctx, NewFileBackend(t.TempDir()), "counters")
	require.NoError(t, err)

	_, err = doc.Commit(ctx, func(v *counters) error {
		(*v)["a"] = 1
		return nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = doc.Commit(ctx, func(v *counters) error {
		(*v)["a"] = 99
		(*v)["b"] = 2
		return boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := doc.Load()
	require.NoError(t, err)
	assert.Equal(t, counters{"a": 1}, v)
}

type failingBackend struct{ Backend }

func (failingBackend) Write(context.Context, string, []byte) error { return errors.New("disk full") }

func TestCommit_FailedWriteLeavesSnapshot(t *testing.T) {
	ctx := context.Background()
	doc, err := Open[counters](ctx, failingBackend{NewFileBackend(t.TempDir())}, "counters")
	require.NoError(t, err)

	_, err = doc.Commit(ctx, func(v *counters) error {
		(*v)["a"] = 1
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	v, err := doc.Load()
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestLoad_ReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	doc, err := Open[counters](ctx, NewFileBackend(t.TempDir()), "counters")
	require.NoError(t, err)

	v, err := doc.Load()
	require.NoError(t, err)
	v["leak"] = 1

	again, err := doc.Load()
	require.NoError(t, err)
	assert.NotContains(t, again, "leak")
}

func TestCommit_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	doc, err := Open[counters](ctx, NewFileBackend(t.TempDir()), "counters")
	require.NoError(t, err)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := doc.Commit(ctx, func(v *counters) error {
				(*v)["hits"]++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := doc.Load()
	require.NoError(t, err)
	assert.Equal(t, writers, v["hits"])
}

type brokenBackend struct{}

func (brokenBackend) Read(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (brokenBackend) Write(context.Context, string, []byte) error { return nil }

func TestOpen_BackendErrorIsReturned(t *testing.T) {
	_, err := Open[counters](context.Background(), brokenBackend{}, "counters")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
