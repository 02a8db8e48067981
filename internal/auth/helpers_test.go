package auth

import (
	"context"
	"testing"
	"time"

	"record_store/internal/storage"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fastArgon2 = Argon2Params{Memory: 64, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

func newTestHasher(scheme string) *Hasher {
	return NewHasher(scheme).WithArgon2Params(fastArgon2).WithBcryptCost(bcrypt.MinCost)
}

func newTestCredentialStore(t *testing.T, backend storage.Backend) *CredentialStore {
	t.Helper()
	doc, err := storage.Open[Users](context.Background(), backend, "test/users")
	require.NoError(t, err)
	return NewCredentialStore(doc, newTestHasher("argon2id"))
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *TokenIssuer) {
	t.Helper()
	creds := newTestCredentialStore(t, storage.NewFileBackend(t.TempDir()))
	issuer := NewTokenIssuer("test-secret-key-at-least-32-chars", 15*time.Minute)
	return NewAuthenticator(creds, issuer, NewMemoryRevoker()), issuer
}
