package models

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/google/uuid"
)

// Verification and reset tokens are stored hashed; only the mail carries the
// plaintext. One live token per owner and kind, rotated on re-issue.

type EmailVerificationToken struct {
	BaseUUIDModel
	OwnerID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"ownerId"`
	TokenHash string    `gorm:"type:text;not null"             json:"-"`
}

// Compare reports whether the plaintext token matches the stored hash
func (t *EmailVerificationToken) Compare(token string) bool {
	return compareTokenHash(t.TokenHash, token)
}

type PasswordResetToken struct {
	BaseUUIDModel
	OwnerID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"ownerId"`
	TokenHash string    `gorm:"type:text;not null"             json:"-"`
}

// Compare reports whether the plaintext token matches the stored hash
func (t *PasswordResetToken) Compare(token string) bool {
	return compareTokenHash(t.TokenHash, token)
}

// HashToken derives the at-rest form of a plaintext token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func compareTokenHash(storedHash, token string) bool {
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(HashToken(token))) == 1
}
