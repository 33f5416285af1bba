package middleware

import (
	"strings"

	"audora/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	UserKeyFiber  = "User"      // Fiber context key for the authenticated user
	TokenKeyFiber = "AuthToken" // Fiber context key for the raw session token
)

// MustAuth validates the bearer token against the user's live session list
// and rejects the request when it fails
func (m *Middleware) MustAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.TraceFromContext(c.UserContext()).Function("MustAuth")

		user, token := m.resolveUser(c)
		if user == nil {
			log.Info("unauthorized request", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized request",
			})
		}

		c.Locals(UserKeyFiber, user)
		c.Locals(TokenKeyFiber, token)
		return c.Next()
	}
}

// IsAuth resolves the user when a valid token is present but lets anonymous
// requests through
func (m *Middleware) IsAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, token := m.resolveUser(c)
		if user != nil {
			c.Locals(UserKeyFiber, user)
			c.Locals(TokenKeyFiber, token)
		}
		return c.Next()
	}
}

// MustVerified requires an authenticated user with a verified email
func (m *Middleware) MustVerified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized request",
			})
		}
		if !user.Verified {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Please verify your email account",
			})
		}
		return c.Next()
	}
}

// ResetTokenValid validates the password reset token carried in the request
// body and stores the token's user for the downstream handler
func (m *Middleware) ResetTokenValid() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.TraceFromContext(c.UserContext()).Function("ResetTokenValid")

		var body struct {
			Token  string `json:"token"`
			UserID string `json:"userId"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		user, err := m.auth.ValidateResetToken(c.UserContext(), body.UserID, body.Token)
		if err != nil {
			log.Info("reset token rejected", "userID", body.UserID)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(UserKeyFiber, user)
		return c.Next()
	}
}

func (m *Middleware) resolveUser(c *fiber.Ctx) (*models.User, string) {
	log := m.log.TraceFromContext(c.UserContext()).Function("resolveUser")

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, ""
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
		return nil, ""
	}
	token := tokenParts[1]
	if token == "" {
		return nil, ""
	}

	userID, err := m.jwtService.Parse(token)
	if err != nil {
		return nil, ""
	}

	user, err := m.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		log.Warn("failed to load user for token", "userID", userID, "error", err)
		return nil, ""
	}
	if user == nil || !user.HasToken(token) {
		return nil, ""
	}

	return user, token
}

// GetUser extracts the authenticated user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetToken extracts the raw session token from Fiber context
func GetToken(c *fiber.Ctx) string {
	token, ok := c.Locals(TokenKeyFiber).(string)
	if !ok {
		return ""
	}
	return token
}
