package api

import (
	"fmt"      // Error wrapping
	"net/http" // HTTP status codes

	"record_store/internal/domain"     // Error taxonomy
	"record_store/internal/middleware" // Error responses and current user
	"record_store/internal/service"    // Jobs service

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListingRequest is the body of POST /admin/job_listings/
type ListingRequest struct {
	ID      string `json:"id" binding:"required"`      // Catalog key
	Title   string `json:"title" binding:"required"`   // Job title
	Company string `json:"company" binding:"required"` // Hiring company
}

// StatusRequest is the body of PUT /applications/:id
type StatusRequest struct {
	Status string `json:"status" binding:"required"` // New status
}

// ListingsHandler returns every job listing keyed by id
func ListingsHandler(jobs *service.Jobs) gin.HandlerFunc {
	return func(c *gin.Context) {
		listings, err := jobs.Listings(c.Request.Context())
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, listings)
	}
}

// CreateListingHandler adds a job listing (admin only)
func CreateListingHandler(jobs *service.Jobs) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		listing, err := jobs.CreateListing(c.Request.Context(), service.ListingInput{ID: req.ID, Title: req.Title, Company: req.Company})
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Job listing created successfully", "id": req.ID, "job_listing": listing})
	}
}

// ApplyHandler applies the current user to ?job_listing_id=X
func ApplyHandler(jobs *service.Jobs) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		listingID := c.Query("job_listing_id")
		if listingID == "" {
			listingID = c.PostForm("job_listing_id") // Form bodies are accepted too
		}
		if listingID == "" {
			middleware.Fail(c, fmt.Errorf("%w: job_listing_id is required", domain.ErrInvalidInput))
			return
		}
		app, err := jobs.Apply(c.Request.Context(), user.Username, listingID)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Application added successfully", "application": app})
	}
}

// ApplicationsHandler lists the current user's applications
func ApplicationsHandler(jobs *service.Jobs) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		apps, err := jobs.Applications(c.Request.Context(), user.Username)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, apps)
	}
}

// ApplicationHandler returns one application
func ApplicationHandler(jobs *service.Jobs) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		app, err := jobs.Application(c.Request.Context(), user.Username, c.Param("id"))
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, app)
	}
}

// UpdateApplicationHandler changes an application's status
func UpdateApplicationHandler(jobs *service.Jobs) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		var req StatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		app, err := jobs.UpdateStatus(c.Request.Context(), user.Username, c.Param("id"), req.Status)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Application updated successfully", "application": app})
	}
}

// DeleteApplicationHandler withdraws one application
func DeleteApplicationHandler(jobs *service.Jobs) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		if err := jobs.Withdraw(c.Request.Context(), user.Username, c.Param("id")); err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
	}
}
