package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	otp, err := GenerateOTP(6)
	require.NoError(t, err)
	assert.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9', "otp should only contain digits, got %q", otp)
	}
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(36)
	require.NoError(t, err)
	assert.Len(t, token, 72) // hex doubles the byte length

	other, err := GenerateSecureToken(36)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
