package crypto

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// SecretMatcher reports whether a caller-supplied value is the admin secret.
// An empty candidate never matches.
type SecretMatcher interface {
	Matches(candidate string) bool
}

type PlainSecret struct {
	secret []byte
}

func NewPlainSecret(secret string) *PlainSecret {
	return &PlainSecret{secret: []byte(secret)}
}

func (s *PlainSecret) Matches(candidate string) bool {
	if candidate == "" || len(s.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(s.secret, []byte(candidate)) == 1
}

type BcryptSecret struct {
	hash []byte
}

func NewBcryptSecret(hash string) *BcryptSecret {
	return &BcryptSecret{hash: []byte(hash)}
}

// bcryptMaxInput is the longest input bcrypt hashes; longer candidates are
// rejected instead of being compared on their first 72 bytes.
const bcryptMaxInput = 72

func (s *BcryptSecret) Matches(candidate string) bool {
	if candidate == "" || len(s.hash) == 0 || len(candidate) > bcryptMaxInput {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.hash, []byte(candidate)) == nil
}

// HashSecret is used by operators to produce ADMIN_PASSWORD_HASH values.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
