package email

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const tokenChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenLength is the length of generated invitation tokens
const TokenLength = 32

// GenerateInviteToken generates a random 32-character alphanumeric token,
// drawing each character uniformly from crypto/rand.
func GenerateInviteToken() (string, error) {
	result := make([]byte, TokenLength)

	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenChars))))
		if err != nil {
			return "", fmt.Errorf("secure random generation failed: %w", err)
		}
		result[i] = tokenChars[n.Int64()]
	}

	return string(result), nil
}
