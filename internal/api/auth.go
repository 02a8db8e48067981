package api

import (
	"net/http" // HTTP status codes

	"record_store/internal/auth"       // Credential store and authenticator
	"record_store/internal/domain"     // Domain models
	"record_store/internal/middleware" // Error responses and current user

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is accepted as JSON, form or query parameters
type RegisterRequest struct {
	Username string             `json:"username" form:"username" binding:"required"` // Username must be provided
	Password string             `json:"password" form:"password" binding:"required"` // Password must be provided
	Role     string             `json:"role" form:"role"`                            // Optional role tag
	Grades   map[string]float64 `json:"grades" form:"-"`                             // Optional grades (JSON only)
}

// LoginRequest is the JSON alternative to HTTP Basic on /login/
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse is returned by a successful login
type AuthResponse struct {
	Message     string `json:"message"`      // Human readable status
	AccessToken string `json:"access_token"` // Signed JWT
	Token       string `json:"token"`        // Same JWT, under the field older clients read
	TokenType   string `json:"token_type"`   // Always bearer
	ExpiresAt   int64  `json:"expires_at"`   // Unix seconds
}

// RegisterFields controls which optional attributes an app stores at registration
type RegisterFields struct {
	Role    bool   // Accept a role tag
	Grades  bool   // Accept a grades map
	Message string // Success message
}

// RegisterHandler creates a user in the credential store
func RegisterHandler(creds *auth.CredentialStore, fields RegisterFields) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON, form or query to struct
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var attrs domain.UserAttrs
		if fields.Role {
			attrs.Role = req.Role
		}
		if fields.Grades {
			attrs.Grades = req.Grades
		}
		if err := creds.Register(c.Request.Context(), req.Username, req.Password, attrs); err != nil {
			middleware.Fail(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"username": req.Username, // New user
			"role":     attrs.Role,   // Role tag, if any
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": fields.Message})
	}
}

// LoginHandler authenticates with Basic credentials or a JSON body and returns a JWT
func LoginHandler(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth() // Prefer the Authorization header
		if !ok {
			var req LoginRequest // Fall back to a JSON body
			if err := c.ShouldBindJSON(&req); err != nil {
				c.Header("WWW-Authenticate", `Basic realm="records"`)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Provide Basic credentials or a JSON username and password"})
				return
			}
			username, password = req.Username, req.Password
		}
		session, err := authn.Login(c.Request.Context(), username, password)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		logrus.WithField("username", username).Info("User logged in")
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{
			Message:     "Login successful",
			AccessToken: session.Token,
			Token:       session.Token,
			TokenType:   "bearer",
			ExpiresAt:   session.ExpiresAt.Unix(),
		})
	}
}

// LogoutHandler revokes the bearer token used for the request
func LogoutHandler(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentClaims(c) // Only bearer requests carry claims
		if !ok {
			middleware.Fail(c, domain.ErrUnauthenticated)
			return
		}
		if err := authn.Logout(c.Request.Context(), claims); err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}
