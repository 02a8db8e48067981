package auth

import (
	"errors" // Error matching
	"time"   // Time for token expiration

	"record_store/internal/domain" // Error taxonomy

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Token IDs
)

// Claims carried by every access token
type Claims struct {
	Role                 string `json:"role,omitempty"` // Role at issue time, informational only
	jwt.RegisteredClaims        // Standard JWT claims; Subject is the username
}

// Username returns the subject of the token
func (c *Claims) Username() string { return c.Subject }

// TokenIssuer signs and parses HS256 access tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer whose tokens live for ttl
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate creates a signed token for username and returns it with its expiry
func (i *TokenIssuer) Generate(username, role string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	// Set token claims
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),             // Revocation handle
			Subject:   username,                     // Identity
			ExpiresAt: jwt.NewNumericDate(expiresAt), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),       // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString(i.secret)                 // Sign the token with the secret
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a token string, failing with domain.ErrTokenExpired or domain.ErrTokenInvalid
func (i *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return i.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // HMAC only
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	// Validate token and extract claims
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
