package service

import (
	"context"
	"errors"
	"testing"

	"record_store/internal/catalog"
	"record_store/internal/domain"
	"record_store/internal/records"
	"record_store/internal/storage"

	"github.com/stretchr/testify/require"
)

// flakyBackend fails writes to one document once armed
type flakyBackend struct {
	storage.Backend
	failName string
	armed    bool
}

func (b *flakyBackend) Write(ctx context.Context, name string, body []byte) error {
	if b.armed && name == b.failName {
		return errors.New("write refused")
	}
	return b.Backend.Write(ctx, name, body)
}

func openRecords[T records.Record](t *testing.T, backend storage.Backend, name, resource string) *records.Store[T] {
	t.Helper()
	doc, err := storage.Open[records.Owned[T]](context.Background(), backend, name)
	require.NoError(t, err)
	return records.NewStore(doc, resource)
}

func openCatalog[T any](t *testing.T, backend storage.Backend, name, resource string) *catalog.Catalog[T] {
	t.Helper()
	doc, err := storage.Open[catalog.Entries[T]](context.Background(), backend, name)
	require.NoError(t, err)
	return catalog.New(doc, nil, resource)
}

func newTestShop(t *testing.T) *Shop {
	backend := storage.NewFileBackend(t.TempDir())
	return NewShop(
		openCatalog[domain.Product](t, backend, "shop/products", "Product"),
		openRecords[domain.CartLine](t, backend, "shop/cart", "Cart item"),
	)
}
