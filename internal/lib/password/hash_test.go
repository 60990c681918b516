package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garilangu/gari-langu/internal/lib/password"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, password.CompareHash(hash, "secret123"))
	assert.Error(t, password.CompareHash(hash, "wrongpassword"))
}

func TestCompareHash_InvalidHash(t *testing.T) {
	err := password.CompareHash("not-a-bcrypt-hash", "secret123")
	assert.Error(t, err)
}
