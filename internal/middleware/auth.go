package middleware

import (
	"strings" // String manipulation

	"record_store/internal/auth"   // Authenticator
	"record_store/internal/domain" // Domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by RequireUser
const (
	ctxUser   = "user"
	ctxClaims = "claims"
)

// Mode selects which Authorization schemes a route accepts
type Mode int

const (
	BearerOnly    Mode = iota // signed token from /login/
	BearerOrBasic             // token, or username/password on every call
)

// RequireUser resolves the Authorization header to a registered user
func RequireUser(authn *auth.Authenticator, mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
			user, claims, err := authn.ResolveToken(c.Request.Context(), tokenStr)
			if err != nil {
				Fail(c, err)
				return
			}
			c.Set(ctxUser, user)     // Store user in context
			c.Set(ctxClaims, claims) // Store claims for logout
		case mode == BearerOrBasic && strings.HasPrefix(authHeader, "Basic "):
			username, password, ok := c.Request.BasicAuth()
			if !ok {
				Fail(c, domain.ErrUnauthenticated)
				return
			}
			user, err := authn.ResolveBasic(c.Request.Context(), username, password)
			if err != nil {
				Fail(c, err)
				return
			}
			c.Set(ctxUser, user) // Store user in context
		default:
			Fail(c, domain.ErrUnauthenticated)
			return
		}
		c.Next() // Proceed to the next handler
	}
}

// CurrentUser returns the user resolved by RequireUser
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}

// CurrentClaims returns the token claims when the request used a bearer token
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
