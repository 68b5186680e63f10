package passwordservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_Password(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("Str0ng!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!pass", hash)

	assert.NoError(t, h.ComparePasswordHash("Str0ng!pass", hash))
	assert.Error(t, h.ComparePasswordHash("wrong", hash))
}

func TestHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewHasher(99)
	assert.Equal(t, DefaultCost, h.cost)
}

func TestHasher_TokenHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 300)

	digest := h.HashString(long)
	assert.Len(t, digest, 64)
	assert.True(t, h.CheckHash(long, digest))
	assert.False(t, h.CheckHash(long+"b", digest))
	assert.Equal(t, "", h.HashString(""))
}
