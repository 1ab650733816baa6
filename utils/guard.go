package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// AccessGuard gates every mutating endpoint behind the shared admin secret.
// Any mismatch, including a missing secret on either side, is forbidden;
// there is no partial result.
type AccessGuard struct {
	secret string
	hash   []byte
}

// NewAccessGuard takes the plain secret and, optionally, a bcrypt hash of it.
// When the hash is configured it wins and the plain value is ignored.
func NewAccessGuard(secret, hash string) *AccessGuard {
	return &AccessGuard{secret: secret, hash: []byte(hash)}
}

func (g *AccessGuard) Authorize(provided string) bool {
	if provided == "" {
		return false
	}
	if len(g.hash) > 0 {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(provided)) == nil
	}
	if g.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(provided)) == 1
}
