package randomgenerator

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomToken(t *testing.T) {
	g := NewRandomGenerator()

	a, err := g.GenerateRandomToken(32)
	require.NoError(t, err)
	b, err := g.GenerateRandomToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	_, err = g.GenerateRandomToken(0)
	assert.Error(t, err)
}
