// Package password hashes and verifies admin credentials.
//
// Stored hashes come in two formats. Legacy rows hold an unsalted SHA-256 hex digest, which is what the
// first release wrote and what the bootstrap account still uses by default. bcrypt hashes are recognised by
// their "$2" prefix. Verify accepts both so that switching the scheme never locks anyone out; NeedsRehash
// tells the caller when a legacy digest should be replaced after a successful login.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Scheme names a hash format for newly written credentials.
type Scheme string

const (
	SchemeSHA256 Scheme = "sha256"
	SchemeBcrypt Scheme = "bcrypt"
)

// Hasher produces and checks password hashes.
type Hasher struct {
	scheme Scheme
	cost   int
}

// New builds a Hasher. Unknown schemes fall back to SHA-256 to stay compatible with existing rows.
func New(scheme Scheme, cost int) *Hasher {
	if scheme != SchemeBcrypt {
		scheme = SchemeSHA256
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{scheme: scheme, cost: cost}
}

// Scheme returns the scheme used for new hashes.
func (h *Hasher) Scheme() Scheme {
	return h.scheme
}

// LegacyDigest returns the unsalted SHA-256 hex digest of plain.
func LegacyDigest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Hash encodes plain with the configured scheme.
func (h *Hasher) Hash(plain string) (string, error) {
	if h.scheme == SchemeSHA256 {
		return LegacyDigest(plain), nil
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(out), nil
}

// Verify reports whether plain matches stored in either format.
func (h *Hasher) Verify(plain, stored string) bool {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	digest := LegacyDigest(plain)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(strings.ToLower(stored))) == 1
}

// NeedsRehash reports whether stored is a legacy digest while bcrypt is configured.
func (h *Hasher) NeedsRehash(stored string) bool {
	return h.scheme == SchemeBcrypt && !isBcrypt(stored)
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}
