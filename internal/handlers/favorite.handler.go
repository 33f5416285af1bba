package handlers

import (
	"audora/internal/app"
	favoritesController "audora/internal/controllers/favorites"
	"audora/internal/handlers/middleware"
	"audora/internal/logger"
	"audora/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type FavoriteHandler struct {
	Handler
	favoritesController favoritesController.FavoritesControllerInterface
}

func NewFavoriteHandler(app app.App, router fiber.Router) *FavoriteHandler {
	log := logger.New("handlers").File("favorite_handler")
	return &FavoriteHandler{
		favoritesController: app.Controllers.Favorites,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *FavoriteHandler) Register() {
	favorite := h.router.Group("/favorite", h.middleware.MustAuth())
	favorite.Post("", h.toggle)
	favorite.Get("", h.list)
	favorite.Get("/is-fav", h.isFavorite)
}

func favoriteErrMappings() []errMapping {
	return []errMapping{
		{Err: favoritesController.ErrValidation, Status: fiber.StatusUnprocessableEntity},
		{Err: favoritesController.ErrNotFound, Status: fiber.StatusNotFound},
	}
}

func (h *FavoriteHandler) toggle(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	result, err := h.favoritesController.Toggle(c.UserContext(), user, c.Query("audioId"))
	if err != nil {
		return respondError(c, err, "Failed to toggle favorite", favoriteErrMappings()...)
	}

	return c.JSON(result)
}

func (h *FavoriteHandler) list(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	audios, err := h.favoritesController.List(c.UserContext(), user, page)
	if err != nil {
		return respondError(c, err, "Failed to list favorites", favoriteErrMappings()...)
	}

	return c.JSON(fiber.Map{"audios": audios})
}

func (h *FavoriteHandler) isFavorite(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	result, err := h.favoritesController.IsFavorite(c.UserContext(), user, c.Query("audioId"))
	if err != nil {
		return respondError(c, err, "Failed to check favorite", favoriteErrMappings()...)
	}

	return c.JSON(fiber.Map{"result": result})
}
