package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass!", hashed)

	assert.True(t, CheckPassword(hashed, "s3cret-pass!"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}

func TestGenerateTemporaryPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		password, err := GenerateTemporaryPassword()
		require.NoError(t, err)
		require.Len(t, password, 12)

		assert.True(t, strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz"), password)
		assert.True(t, strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"), password)
		assert.True(t, strings.ContainsAny(password, "0123456789"), password)
		assert.False(t, seen[password], "duplicate password generated")
		seen[password] = true
	}
}
