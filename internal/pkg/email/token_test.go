package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteToken_LengthAndCharset(t *testing.T) {
	token, err := GenerateInviteToken()
	require.NoError(t, err)

	assert.Len(t, token, TokenLength)
	for _, r := range token {
		assert.True(t, strings.ContainsRune(tokenChars, r), "unexpected character %q in token", r)
	}
}

func TestGenerateInviteToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := GenerateInviteToken()
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup, "duplicate token generated")
		seen[token] = struct{}{}
	}
}
