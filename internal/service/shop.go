package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"record_store/internal/catalog"
	"record_store/internal/domain"
	"record_store/internal/records"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ProductView is a product with its catalog id
type ProductView struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CartItem is a cart line with its product resolved
type CartItem struct {
	ID        string  `json:"id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"` // false once the product is gone from the catalog
}

// Receipt is the outcome of a checkout
type Receipt struct {
	TotalPrice float64    `json:"total_price"`
	Items      []CartItem `json:"items"`
}

// Shop manages the product catalog and per-user carts
type Shop struct {
	products *catalog.Catalog[domain.Product]
	carts    *records.Store[domain.CartLine]
}

// NewShop wires the product catalog and the cart store
func NewShop(products *catalog.Catalog[domain.Product], carts *records.Store[domain.CartLine]) *Shop {
	return &Shop{products: products, carts: carts}
}

// AddProduct creates a catalog entry; callers enforce the admin gate
func (s *Shop) AddProduct(ctx context.Context, p ProductView) error {
	if p.Name == "" || p.Price < 0 {
		return fmt.Errorf("%w: product needs a name and a non-negative price", domain.ErrInvalidInput)
	}
	if err := s.products.Create(ctx, strconv.Itoa(p.ID), domain.Product{Name: p.Name, Price: p.Price}); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"product_id": p.ID, "name": p.Name, "price": p.Price}).Info("Product added")
	return nil
}

// Products lists the catalog ordered by id
func (s *Shop) Products(ctx context.Context) ([]ProductView, error) {
	entries, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ProductView, 0, len(entries))
	for key, p := range entries {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue // not written by this service
		}
		views = append(views, ProductView{ID: id, Name: p.Name, Price: p.Price})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

// AddToCart appends a line for an existing product
func (s *Shop) AddToCart(ctx context.Context, owner string, productID int) (domain.CartLine, error) {
	if _, err := s.products.Get(ctx, strconv.Itoa(productID)); err != nil {
		return domain.CartLine{}, err
	}
	line, err := s.carts.Append(ctx, owner, func(id string, now time.Time) domain.CartLine {
		return domain.CartLine{ID: id, ProductID: productID, AddedAt: now.Format(time.RFC3339Nano)}
	})
	if err != nil {
		return domain.CartLine{}, err
	}
	logrus.WithFields(logrus.Fields{"username": owner, "product_id": productID}).Info("Product added to cart")
	return line, nil
}

// Cart returns owner's cart with products resolved
func (s *Shop) Cart(ctx context.Context, owner string) ([]CartItem, error) {
	lines, err := s.carts.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	items, _, err := s.price(ctx, lines)
	return items, err
}

// RemoveFromCart drops one line
func (s *Shop) RemoveFromCart(ctx context.Context, owner, lineID string) error {
	return s.carts.Delete(ctx, owner, lineID)
}

// Checkout empties owner's cart and totals the products that still exist
func (s *Shop) Checkout(ctx context.Context, owner string) (Receipt, error) {
	lines, err := s.carts.Clear(ctx, owner)
	if err != nil {
		return Receipt{}, err
	}
	if len(lines) == 0 {
		return Receipt{}, domain.ErrCartEmpty
	}
	items, total, err := s.price(ctx, lines)
	if err != nil {
		return Receipt{}, err
	}
	logrus.WithFields(logrus.Fields{
		"username":    owner,
		"items":       len(items),
		"total_price": total.String(),
	}).Info("Checkout completed")
	return Receipt{TotalPrice: total.InexactFloat64(), Items: items}, nil
}

func (s *Shop) price(ctx context.Context, lines []domain.CartLine) ([]CartItem, decimal.Decimal, error) {
	entries, err := s.products.List(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := decimal.Zero
	items := make([]CartItem, 0, len(lines))
	for _, l := range lines {
		item := CartItem{ID: l.ID, ProductID: l.ProductID}
		if p, ok := entries[strconv.Itoa(l.ProductID)]; ok {
			item.Name, item.Price, item.Available = p.Name, p.Price, true
			total = total.Add(decimal.NewFromFloat(p.Price))
		}
		items = append(items, item)
	}
	return items, total, nil
}
