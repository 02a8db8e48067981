package domain

// Product Model
type Product struct {
	Name  string  `json:"name"`  // Display name
	Price float64 `json:"price"` // Unit price
}

// CartLine Model
type CartLine struct {
	ID        string `json:"id"`         // Random UUID of the line
	ProductID int    `json:"product_id"` // Catalog key of the product
	AddedAt   string `json:"added_at"`   // RFC 3339 UTC
}

// Key returns the cart line identity
func (l CartLine) Key() string { return l.ID }
