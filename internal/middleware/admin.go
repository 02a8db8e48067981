package middleware

import (
	"record_store/internal/domain" // Error taxonomy

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the role of the user resolved by RequireUser.
// The role comes from the credential store on every request, not from the token.
func AdminOnlyMiddleware(adminRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := CurrentUser(c) // Get user from context
		// Check if user exists in context
		if !exists {
			// If not, abort with unauthorized status
			Fail(c, domain.ErrUnauthenticated)
			return
		}
		// Check if user role is admin
		if user.Role != adminRole {
			// If not admin, abort with forbidden status
			Fail(c, domain.ErrForbidden)
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
