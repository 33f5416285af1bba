package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordRoundTrip(t *testing.T) {
	user := &User{}

	require.NoError(t, user.SetPassword("correct horse battery"))

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.True(t, user.ComparePassword("correct horse battery"))
	assert.False(t, user.ComparePassword("wrong password"))
}

func TestUserTokens(t *testing.T) {
	user := &User{Tokens: []string{"token-a", "token-b"}}

	assert.True(t, user.HasToken("token-a"))
	assert.False(t, user.HasToken("token-c"))

	user.RemoveToken("token-a")

	assert.False(t, user.HasToken("token-a"))
	assert.True(t, user.HasToken("token-b"))
}

func TestUserToProfile(t *testing.T) {
	user := &User{
		Name:       "Asha",
		Email:      "asha@example.com",
		Verified:   true,
		AvatarURL:  "https://cdn.example.com/avatars/asha.png",
		Followers:  []uuid.UUID{uuid.New(), uuid.New()},
		Followings: []uuid.UUID{uuid.New()},
	}
	user.ID = uuid.New()

	profile := user.ToProfile()

	assert.Equal(t, user.ID.String(), profile.ID)
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, "asha@example.com", profile.Email)
	assert.True(t, profile.Verified)
	assert.Equal(t, 2, profile.Followers)
	assert.Equal(t, 1, profile.Followings)
}
