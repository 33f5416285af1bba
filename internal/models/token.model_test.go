package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("123456"), HashToken("123456"))
	assert.NotEqual(t, HashToken("123456"), HashToken("654321"))
	assert.Len(t, HashToken("123456"), 64)
}

func TestVerificationTokenCompare(t *testing.T) {
	token := &EmailVerificationToken{TokenHash: HashToken("482910")}

	assert.True(t, token.Compare("482910"))
	assert.False(t, token.Compare("482911"))
	assert.False(t, token.Compare(""))
}

func TestResetTokenCompare(t *testing.T) {
	token := &PasswordResetToken{TokenHash: HashToken("a3f9c2")}

	assert.True(t, token.Compare("a3f9c2"))
	assert.False(t, token.Compare("A3F9C2"))
}
