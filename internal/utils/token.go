package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateOTP returns a random numeric code of the given length, used for
// email verification mails
func GenerateOTP(length int) (string, error) {
	otp := ""
	for range length {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate otp digit: %w", err)
		}
		otp += digit.String()
	}
	return otp, nil
}

// GenerateSecureToken returns a hex-encoded random token of byteLength random
// bytes, used for password reset links
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
