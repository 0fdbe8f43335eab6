package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	stored, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(stored, "s3cret-password"))
	assert.False(t, VerifyPassword(stored, "wrong-password"))
	assert.False(t, VerifyPassword(stored, ""))
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, err := HashPassword("same input")
	require.NoError(t, err)
	b, err := HashPassword("same input")
	require.NoError(t, err)

	// Same password, different salt, different stored value.
	assert.NotEqual(t, a, b)
	assert.True(t, VerifyPassword(a, "same input"))
	assert.True(t, VerifyPassword(b, "same input"))
}

func TestStoredHashLayout(t *testing.T) {
	stored, err := HashPassword("layout-check")
	require.NoError(t, err)

	salt, digest, err := SplitStoredHash(stored)
	require.NoError(t, err)
	assert.Len(t, salt, saltLen)
	assert.Len(t, digest, sha256.Size)

	// The digest must be HMAC-SHA256 keyed by the embedded salt.
	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte("layout-check"))
	assert.Equal(t, mac.Sum(nil), digest)
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	for _, stored := range []string{
		"",
		"not base64!!!",
		"c2hvcnQ=", // valid base64 but too short to hold salt+digest
	} {
		assert.False(t, VerifyPassword(stored, "anything"), "stored=%q", stored)
	}
}

func TestSplitStoredHashRejectsShortBlob(t *testing.T) {
	_, _, err := SplitStoredHash("c2hvcnQ=")
	assert.ErrorIs(t, err, ErrBadHash)
}
