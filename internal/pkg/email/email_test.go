package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvitationExpiryText(t *testing.T) {
	tests := []struct {
		name     string
		expiry   time.Duration
		expected string
	}{
		{name: "default week", expiry: 168 * time.Hour, expected: "7 days"},
		{name: "single day", expiry: 24 * time.Hour, expected: "1 day"},
		{name: "two weeks", expiry: 336 * time.Hour, expected: "14 days"},
		{name: "partial day falls back to duration string", expiry: 36 * time.Hour, expected: "36h0m0s"},
		{name: "zero uses the default week", expiry: 0, expected: "7 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, invitationExpiryText(tt.expiry))
		})
	}
}
