package api

import (
	"record_store/internal/auth"       // Authenticator
	"record_store/internal/middleware" // Authentication middleware
	"record_store/internal/service"    // App services

	"github.com/gin-gonic/gin" // Gin web framework
)

// authRoutes mounts /register/, /login/ and /logout/
func authRoutes(r gin.IRouter, authn *auth.Authenticator, fields RegisterFields) {
	r.POST("/register/", RegisterHandler(authn.Credentials(), fields)) // Registration endpoint
	r.POST("/login/", LoginHandler(authn))                             // Login endpoint
	r.POST("/logout/", middleware.RequireUser(authn, middleware.BearerOnly), LogoutHandler(authn))
}

// NotesRoutes mounts the notes app
func NotesRoutes(r gin.IRouter, authn *auth.Authenticator, notes *service.Notes) {
	authRoutes(r, authn, RegisterFields{Message: "User registered successfully"})

	// Note routes (protected by JWT)
	notesGroup := r.Group("/notes")
	notesGroup.Use(middleware.RequireUser(authn, middleware.BearerOnly))
	notesGroup.POST("/", AddNoteHandler(notes))         // Create note
	notesGroup.GET("/", ListNotesHandler(notes))        // List notes
	notesGroup.GET("/:id", GetNoteHandler(notes))       // Get note
	notesGroup.PUT("/:id", UpdateNoteHandler(notes))    // Update note
	notesGroup.DELETE("/:id", DeleteNoteHandler(notes)) // Delete note
}

// ShopRoutes mounts the shop app
func ShopRoutes(r gin.IRouter, authn *auth.Authenticator, shop *service.Shop, adminRole string) {
	authRoutes(r, authn, RegisterFields{Role: true, Message: "User registered successfully"})

	r.GET("/products/", ProductsHandler(shop)) // Public catalog

	// Admin routes accept Basic credentials as well as a token
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireUser(authn, middleware.BearerOrBasic), middleware.AdminOnlyMiddleware(adminRole))
	adminGroup.POST("/add_product/", AddProductHandler(shop))

	// Cart routes (protected by JWT)
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.RequireUser(authn, middleware.BearerOnly))
	cartGroup.POST("/add/", AddToCartHandler(shop))       // Add a product
	cartGroup.GET("/", CartHandler(shop))                 // View cart
	cartGroup.DELETE("/:id", RemoveFromCartHandler(shop)) // Remove a line
	cartGroup.POST("/checkout/", CheckoutHandler(shop))   // Checkout
}

// JobsRoutes mounts the job application tracker
func JobsRoutes(r gin.IRouter, authn *auth.Authenticator, jobs *service.Jobs, adminRole string) {
	authRoutes(r, authn, RegisterFields{Role: true, Message: "User registered successfully"})

	r.GET("/job_listings/", ListingsHandler(jobs)) // Public listings

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireUser(authn, middleware.BearerOrBasic), middleware.AdminOnlyMiddleware(adminRole))
	adminGroup.POST("/job_listings/", CreateListingHandler(jobs))

	// Application routes (protected by JWT)
	appGroup := r.Group("/applications")
	appGroup.Use(middleware.RequireUser(authn, middleware.BearerOnly))
	appGroup.POST("/", ApplyHandler(jobs))                  // Apply
	appGroup.GET("/", ApplicationsHandler(jobs))            // List applications
	appGroup.GET("/:id", ApplicationHandler(jobs))          // Get application
	appGroup.PUT("/:id", UpdateApplicationHandler(jobs))    // Update status
	appGroup.DELETE("/:id", DeleteApplicationHandler(jobs)) // Delete application
}

// PortalRoutes mounts the student portal
func PortalRoutes(r gin.IRouter, authn *auth.Authenticator, portal *service.Portal) {
	authRoutes(r, authn, RegisterFields{Grades: true, Message: "Student registered successfully"})

	gradesGroup := r.Group("/grades")
	gradesGroup.Use(middleware.RequireUser(authn, middleware.BearerOrBasic))
	gradesGroup.GET("/", GradesHandler(portal))        // All grades
	gradesGroup.GET("/:subject", GradeHandler(portal)) // One subject
}
