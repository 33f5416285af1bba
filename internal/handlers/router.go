package handlers

import (
	"audora/internal/app"
	"audora/internal/handlers/middleware"
	"audora/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) error {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewAudioHandler(*app, api).Register()
	NewFavoriteHandler(*app, api).Register()
	NewHistoryHandler(*app, api).Register()
	NewPlaylistHandler(*app, api).Register()
	NewProfileHandler(*app, api).Register()

	return nil
}
