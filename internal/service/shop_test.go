package service

import (
	"context"
	"testing"

	"record_store/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShop_AddProductAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestShop(t)

	require.NoError(t, s.AddProduct(ctx, ProductView{ID: 10, Name: "Gadget", Price: 5}))
	require.NoError(t, s.AddProduct(ctx, ProductView{ID: 2, Name: "Widget", Price: 9.99}))

	err := s.AddProduct(ctx, ProductView{ID: 2, Name: "Clone", Price: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	assert.ErrorIs(t, s.AddProduct(ctx, ProductView{ID: 3}), domain.ErrInvalidInput)

	products, err := s.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ProductView{
		{ID: 2, Name: "Widget", Price: 9.99},
		{ID: 10, Name: "Gadget", Price: 5},
	}, products)
}

func TestShop_CheckoutTotalsAndClears(t *testing.T) {
	ctx := context.Background()
	s := newTestShop(t)
	require.NoError(t, s.AddProduct(ctx, ProductView{ID: 1, Name: "Widget", Price: 9.99}))

	_, err := s.AddToCart(ctx, "carol", 1)
	require.NoError(t, err)

	receipt, err := s.Checkout(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, 9.99, receipt.TotalPrice)
	require.Len(t, receipt.Items, 1)

	cart, err := s.Cart(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, cart)

	_, err = s.Checkout(ctx, "carol")
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
}

func TestShop_CheckoutUsesDecimalSums(t *testing.T) {
	ctx := context.Background()
	s := newTestShop(t)
	require.NoError(t, s.AddProduct(ctx, ProductView{ID: 1, Name: "Dime", Price: 0.1}))
	require.NoError(t, s.AddProduct(ctx, ProductView{ID: 2, Name: "Twenty", Price: 0.2}))

	_, err := s.AddToCart(ctx, "carol", 1)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "carol", 2)
	require.NoError(t, err)

	receipt, err := s.Checkout(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, 0.3, receipt.TotalPrice)
}

func TestShop_AddToCartUnknownProduct(t *testing.T) {
	ctx := context.Background()
	s := newTestShop(t)

	_, err := s.AddToCart(ctx, "carol", 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cart, err := s.Cart(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestShop_RemoveFromCart(t *testing.T) {
	ctx := context.Background()
	s := newTestShop(t)
	require.NoError(t, s.AddProduct(ctx, ProductView{ID: 1, Name: "Widget", Price: 9.99}))

	a, err := s.AddToCart(ctx, "carol", 1)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "carol", 1)
	require.NoError(t, err)

	require.NoError(t, s.RemoveFromCart(ctx, "carol", a.ID))
	assert.ErrorIs(t, s.RemoveFromCart(ctx, "carol", a.ID), domain.ErrNotFound)

	cart, err := s.Cart(ctx, "carol")
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "Widget", cart[0].Name)
	assert.True(t, cart[0].Available)
}
