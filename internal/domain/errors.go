package domain

import "errors"

// Error taxonomy shared by every app
var (
	ErrUnknownUser     = errors.New("user not found")
	ErrBadPassword     = errors.New("invalid password")
	ErrDuplicateUser   = errors.New("username already exists")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrUnauthenticated = errors.New("missing or invalid authorization header")
	ErrDuplicateEntry  = errors.New("entry already exists")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrInvalidInput    = errors.New("invalid input")
)

// NotFoundError names the missing resource and matches ErrNotFound
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound returns an error for a missing resource, e.g. NotFound("Note")
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}
