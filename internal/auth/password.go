package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes new passwords and verifies stored hashes
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash, and whether hash should be replaced
	// by a fresh Hash(password) because it uses an outdated scheme.
	Verify(hash, password string) (ok, rehash bool, err error)
}

// Argon2Params tunes argon2id
type Argon2Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultArgon2Params follows the RFC 9106 second recommendation
var DefaultArgon2Params = Argon2Params{Memory: 64 * 1024, Time: 3, Threads: 4, SaltLen: 16, KeyLen: 32}

var errMalformedHash = errors.New("malformed password hash")

// Hasher produces hashes with its primary scheme and verifies argon2id, bcrypt
// and legacy unsalted SHA-256 hex digests.
type Hasher struct {
	scheme     string
	argon      Argon2Params
	bcryptCost int
}

// NewHasher returns a hasher whose new hashes use scheme ("argon2id" or "bcrypt")
func NewHasher(scheme string) *Hasher {
	return &Hasher{scheme: scheme, argon: DefaultArgon2Params, bcryptCost: bcrypt.DefaultCost}
}

// WithArgon2Params overrides the argon2id parameters
func (h *Hasher) WithArgon2Params(p Argon2Params) *Hasher {
	h.argon = p
	return h
}

// WithBcryptCost overrides the bcrypt cost
func (h *Hasher) WithBcryptCost(cost int) *Hasher {
	h.bcryptCost = cost
	return h
}

// Hash returns a salted hash of password
func (h *Hasher) Hash(password string) (string, error) {
	if h.scheme == "bcrypt" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	salt := make([]byte, h.argon.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, h.argon.Time, h.argon.Memory, h.argon.Threads, h.argon.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.argon.Memory, h.argon.Time, h.argon.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks password against any supported hash format
func (h *Hasher) Verify(hash, password string) (bool, bool, error) {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		ok, err := verifyArgon2id(hash, password)
		return ok, ok && h.scheme != "argon2id", err
	case strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"), strings.HasPrefix(hash, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, false, nil
		}
		if err != nil {
			return false, false, err
		}
		return true, h.scheme != "bcrypt", nil
	case isLegacyDigest(hash):
		sum := sha256.Sum256([]byte(password))
		ok := subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(strings.ToLower(hash))) == 1
		return ok, ok, nil
	}
	return false, false, errMalformedHash
}

func verifyArgon2id(hash, password string) (bool, error) {
	parts := strings.Split(hash, "$") // "", argon2id, v=19, m=..,t=..,p=.., salt, key
	if len(parts) != 6 {
		return false, errMalformedHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, errMalformedHash
	}
	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, errMalformedHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, errMalformedHash
	}
	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// isLegacyDigest matches the 64-char hex SHA-256 digests the JSON documents used to hold
func isLegacyDigest(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
