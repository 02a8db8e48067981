package auth

import (
	"context"
	"fmt"
	"time"

	"record_store/internal/domain"

	"github.com/sirupsen/logrus"
)

// Session is the result of a successful login
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Authenticator resolves credentials or bearer tokens to a user
type Authenticator struct {
	creds   *CredentialStore
	tokens  *TokenIssuer
	revoker Revoker
}

// NewAuthenticator wires the credential store, token issuer and revocation list
func NewAuthenticator(creds *CredentialStore, tokens *TokenIssuer, revoker Revoker) *Authenticator {
	return &Authenticator{creds: creds, tokens: tokens, revoker: revoker}
}

// Credentials exposes the underlying credential store
func (a *Authenticator) Credentials() *CredentialStore { return a.creds }

// Login verifies the pair and issues a token
func (a *Authenticator) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := a.creds.Verify(ctx, username, password)
	if err != nil {
		return Session{}, err
	}
	token, expiresAt, err := a.tokens.Generate(user.Username, user.Role)
	if err != nil {
		return Session{}, fmt.Errorf("generate token: %w", err)
	}
	return Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ResolveBasic is the credential-pair mode
func (a *Authenticator) ResolveBasic(ctx context.Context, username, password string) (domain.User, error) {
	return a.creds.Verify(ctx, username, password)
}

// ResolveToken is the bearer mode: signature, expiry, revocation, then the user must still exist
func (a *Authenticator) ResolveToken(ctx context.Context, token string) (domain.User, *Claims, error) {
	claims, err := a.tokens.Parse(token)
	if err != nil {
		return domain.User{}, nil, err
	}
	revoked, err := a.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return domain.User{}, nil, err
	}
	if revoked {
		return domain.User{}, nil, domain.ErrTokenInvalid
	}
	user, err := a.creds.Lookup(ctx, claims.Username())
	if err != nil {
		return domain.User{}, nil, err
	}
	return user, claims, nil
}

// Logout revokes the token until it would have expired
func (a *Authenticator) Logout(ctx context.Context, claims *Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := a.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"username": claims.Username(),
		"jti":      claims.ID,
	}).Info("Token revoked")
	return nil
}
