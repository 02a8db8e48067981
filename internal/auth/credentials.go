package auth

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"record_store/internal/domain"
	"record_store/internal/storage"

	"github.com/sirupsen/logrus"
)

// Users is the persisted shape of a users document
type Users map[string]domain.User

// CredentialStore maps usernames to password hashes and attributes
type CredentialStore struct {
	doc    *storage.Document[Users]
	hasher PasswordHasher
}

// NewCredentialStore wraps an opened users document
func NewCredentialStore(doc *storage.Document[Users], hasher PasswordHasher) *CredentialStore {
	return &CredentialStore{doc: doc, hasher: hasher}
}

// Register adds a user; an existing username fails with domain.ErrDuplicateUser
func (s *CredentialStore) Register(ctx context.Context, username, password string, attrs domain.UserAttrs) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if strings.Contains(username, ":") {
		return fmt.Errorf("%w: username must not contain ':'", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.doc.Commit(ctx, func(users *Users) error {
		if _, exists := (*users)[username]; exists {
			return domain.ErrDuplicateUser
		}
		(*users)[username] = domain.User{
			PasswordHash: hash,
			Role:         attrs.Role,
			Grades:       maps.Clone(attrs.Grades),
		}
		return nil
	})
	return err
}

// Lookup returns the stored user without checking any password
func (s *CredentialStore) Lookup(_ context.Context, username string) (domain.User, error) {
	users, err := s.doc.Load()
	if err != nil {
		return domain.User{}, err
	}
	user, ok := users[username]
	if !ok {
		return domain.User{}, domain.ErrUnknownUser
	}
	user.Username = username
	return user, nil
}

// Verify checks a username/password pair.
// Hashes in an outdated scheme are upgraded in place after a successful check.
func (s *CredentialStore) Verify(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.Lookup(ctx, username)
	if err != nil {
		return domain.User{}, err
	}

	ok, rehash, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return domain.User{}, fmt.Errorf("verify password for %s: %w", username, err)
	}
	if !ok {
		return domain.User{}, domain.ErrBadPassword
	}

	if rehash {
		s.upgrade(ctx, username, user.PasswordHash, password)
	}
	return user, nil
}

// upgrade replaces an outdated hash; failures are logged and the login still succeeds
func (s *CredentialStore) upgrade(ctx context.Context, username, oldHash, password string) {
	newHash, err := s.hasher.Hash(password)
	if err == nil {
		_, err = s.doc.Commit(ctx, func(users *Users) error {
			u, ok := (*users)[username]
			if !ok || u.PasswordHash != oldHash {
				return nil // changed concurrently, leave it
			}
			u.PasswordHash = newHash
			(*users)[username] = u
			return nil
		})
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err.Error(),
		}).Warn("Password hash upgrade failed")
		return
	}
	logrus.WithField("username", username).Info("Password hash upgraded")
}
