package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type User struct {
	BaseUUIDModel
	Name         string                        `gorm:"type:text;not null"        json:"name"`
	Email        string                        `gorm:"type:text;uniqueIndex"     json:"email"`
	PasswordHash string                        `gorm:"type:text;not null"        json:"-"`
	Verified     bool                          `gorm:"type:bool;default:false"   json:"verified"`
	AvatarURL    string                        `gorm:"type:text"                 json:"avatar,omitempty"`
	AvatarKey    string                        `gorm:"type:text"                 json:"-"`
	Followers    datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb"               json:"-"`
	Followings   datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb"               json:"-"`
	Tokens       datatypes.JSONSlice[string]    `gorm:"type:jsonb"               json:"-"`
}

// SetPassword hashes and stores the given plaintext password
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// ComparePassword reports whether the plaintext matches the stored hash
func (u *User) ComparePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HasToken reports whether the given JWT is in the user's active session list
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// RemoveToken drops one JWT from the user's active session list
func (u *User) RemoveToken(token string) {
	kept := make([]string, 0, len(u.Tokens))
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
}

// UserProfile is the public profile shape returned by auth and profile routes
type UserProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Verified   bool   `json:"verified"`
	Avatar     string `json:"avatar,omitempty"`
	Followers  int    `json:"followers"`
	Followings int    `json:"followings"`
}

// ToProfile converts a User to its public profile
func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Verified:   u.Verified,
		Avatar:     u.AvatarURL,
		Followers:  len(u.Followers),
		Followings: len(u.Followings),
	}
}
