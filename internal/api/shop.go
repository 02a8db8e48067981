package api

import (
	"fmt"      // Error wrapping
	"net/http" // HTTP status codes
	"strconv"  // Query parameter parsing

	"record_store/internal/domain"     // Error taxonomy
	"record_store/internal/middleware" // Error responses and current user
	"record_store/internal/service"    // Shop service

	"github.com/gin-gonic/gin" // Gin web framework
)

// ProductRequest is the body of POST /admin/add_product/
type ProductRequest struct {
	ID    int     `json:"id" binding:"required"`   // Catalog id, numeric
	Name  string  `json:"name" binding:"required"` // Display name
	Price float64 `json:"price" binding:"gte=0"`   // Unit price
}

// ProductsHandler lists the catalog
func ProductsHandler(shop *service.Shop) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := shop.Products(c.Request.Context())
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// AddProductHandler creates a catalog entry (admin only)
func AddProductHandler(shop *service.Shop) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		product := service.ProductView{ID: req.ID, Name: req.Name, Price: req.Price}
		if err := shop.AddProduct(c.Request.Context(), product); err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "product": product})
	}
}

// AddToCartHandler appends ?product_id=N to the current user's cart
func AddToCartHandler(shop *service.Shop) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		productID, err := strconv.Atoi(c.Query("product_id")) // Product ids are numeric
		if err != nil {
			middleware.Fail(c, fmt.Errorf("%w: product_id must be an integer", domain.ErrInvalidInput))
			return
		}
		line, err := shop.AddToCart(c.Request.Context(), user.Username, productID)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product added to cart", "item": line})
	}
}

// CartHandler returns the current user's cart
func CartHandler(shop *service.Shop) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		items, err := shop.Cart(c.Request.Context(), user.Username)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// RemoveFromCartHandler deletes one cart line
func RemoveFromCartHandler(shop *service.Shop) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		if err := shop.RemoveFromCart(c.Request.Context(), user.Username, c.Param("id")); err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// CheckoutHandler totals and clears the current user's cart
func CheckoutHandler(shop *service.Shop) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		receipt, err := shop.Checkout(c.Request.Context(), user.Username)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Checkout successful", "total_price": receipt.TotalPrice, "items": receipt.Items})
	}
}
