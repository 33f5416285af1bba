package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type errMapping struct {
	Err    error
	Status int
}

// respondError maps controller sentinel errors onto HTTP statuses; anything
// unmapped becomes a 500 with a generic message
func respondError(c *fiber.Ctx, err error, fallback string, mappings ...errMapping) error {
	for _, mapping := range mappings {
		if errors.Is(err, mapping.Err) {
			return c.Status(mapping.Status).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}
