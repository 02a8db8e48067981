package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"record_store/internal/domain" // Error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// StatusFor maps an error to the HTTP status and the message shown to the caller
func StatusFor(err error) (int, string) {
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrUnknownUser):
		return http.StatusUnauthorized, "User not found"
	case errors.Is(err, domain.ErrBadPassword):
		return http.StatusUnauthorized, "Invalid password"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Token has expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Missing or invalid Authorization header"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Admin access required"
	case errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, domain.ErrCartEmpty):
		return http.StatusBadRequest, "Cart is empty"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrDuplicateEntry):
		return http.StatusConflict, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

// Fail writes err as {"error": ...} and aborts the chain
func Fail(c *gin.Context, err error) {
	status, msg := StatusFor(err)
	if status == http.StatusInternalServerError {
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method, // HTTP method
			"path":   c.FullPath(),     // Route
			"error":  err.Error(),      // Error message
		}).Error("Request failed")
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", `Bearer realm="records"`)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
