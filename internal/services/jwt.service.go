package services

import (
	"audora/config"
	"audora/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTService signs and verifies the bearer tokens used for sessions and
// password reset links
type JWTService struct {
	secret []byte
	log    logger.Logger
}

func NewJWTService(config config.Config) *JWTService {
	return &JWTService{
		secret: []byte(config.JWTSecret),
		log:    logger.New("JWTService"),
	}
}

// Sign issues a token carrying the user's id
func (s *JWTService) Sign(userID uuid.UUID) (string, error) {
	log := s.log.Function("Sign")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID.String(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign token", err, "userID", userID)
	}

	return signed, nil
}

// Parse verifies the token signature and returns the embedded user id
func (s *JWTService) Parse(tokenString string) (uuid.UUID, error) {
	log := s.log.Function("Parse")

	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return uuid.Nil, log.Err("failed to parse token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, log.ErrMsg("unexpected token claims shape")
	}

	rawID, ok := claims["userId"].(string)
	if !ok {
		return uuid.Nil, log.ErrMsg("token is missing the userId claim")
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, log.Err("token userId claim is not a uuid", err)
	}

	return userID, nil
}
