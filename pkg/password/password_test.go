package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const passwordDigest = "5e884898da28047151d0e56f8dc6292773603d0d6aca8fef2d6f1a3b5c4a6d6c"

func TestLegacyDigestMatchesKnownValue(t *testing.T) {
	assert.Equal(t, passwordDigest, LegacyDigest("password"))
	assert.NotEqual(t, LegacyDigest("password"), LegacyDigest("Password"))
}

func TestSHA256HasherRoundTrip(t *testing.T) {
	h := New(SchemeSHA256, 0)

	hash, err := h.Hash("geheim123")
	require.NoError(t, err)
	assert.Equal(t, LegacyDigest("geheim123"), hash)
	assert.True(t, h.Verify("geheim123", hash))
	assert.True(t, h.Verify("geheim123", strings.ToUpper(hash)))
	assert.False(t, h.Verify("geheim124", hash))
	assert.False(t, h.NeedsRehash(hash))
}

func TestBcryptHasherVerifiesLegacyDigests(t *testing.T) {
	h := New(SchemeBcrypt, bcrypt.MinCost)

	hash, err := h.Hash("geheim123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.True(t, h.Verify("geheim123", hash))
	assert.False(t, h.Verify("wrong", hash))
	assert.False(t, h.NeedsRehash(hash))

	legacy := LegacyDigest("geheim123")
	assert.True(t, h.Verify("geheim123", legacy))
	assert.True(t, h.NeedsRehash(legacy))
}

func TestUnknownSchemeFallsBackToSHA256(t *testing.T) {
	h := New(Scheme("argon2"), 99)

	assert.Equal(t, SchemeSHA256, h.Scheme())
}
