package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRefreshTokenDeterministic(t *testing.T) {
	a := HashRefreshToken("some.jwt.token")
	b := HashRefreshToken("some.jwt.token")
	assert.Equal(t, a, b)
}

func TestHashRefreshTokenDistinguishesInputs(t *testing.T) {
	assert.NotEqual(t, HashRefreshToken("token-a"), HashRefreshToken("token-b"))
}

func TestHashRefreshTokenIsBase64SHA256(t *testing.T) {
	h := HashRefreshToken("anything")
	raw, err := base64.StdEncoding.DecodeString(h)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}
