package handlers

import (
	"audora/internal/app"
	playlistsController "audora/internal/controllers/playlists"
	"audora/internal/handlers/middleware"
	"audora/internal/logger"
	"audora/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PlaylistHandler struct {
	Handler
	playlistsController playlistsController.PlaylistsControllerInterface
}

func NewPlaylistHandler(app app.App, router fiber.Router) *PlaylistHandler {
	log := logger.New("handlers").File("playlist_handler")
	return &PlaylistHandler{
		playlistsController: app.Controllers.Playlists,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PlaylistHandler) Register() {
	playlist := h.router.Group("/playlist", h.middleware.MustAuth())
	playlist.Post("/create", h.middleware.MustVerified(), h.create)
	playlist.Patch("", h.middleware.MustVerified(), h.update)
	playlist.Delete("", h.remove)
	playlist.Get("/by-profile", h.listMine)
	playlist.Get("/:playlistId", h.getAudios)
}

func playlistErrMappings() []errMapping {
	return []errMapping{
		{Err: playlistsController.ErrValidation, Status: fiber.StatusUnprocessableEntity},
		{Err: playlistsController.ErrNotFound, Status: fiber.StatusNotFound},
	}
}

func (h *PlaylistHandler) create(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	var req playlistsController.CreatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	summary, err := h.playlistsController.Create(c.UserContext(), user, &req)
	if err != nil {
		return respondError(c, err, "Failed to create playlist", playlistErrMappings()...)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"playlist": summary})
}

func (h *PlaylistHandler) update(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	var req playlistsController.UpdatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	summary, err := h.playlistsController.Update(c.UserContext(), user, &req)
	if err != nil {
		return respondError(c, err, "Failed to update playlist", playlistErrMappings()...)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"playlist": summary})
}

func (h *PlaylistHandler) remove(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	req := playlistsController.RemovePlaylistRequest{
		PlaylistID: c.Query("playlistId"),
		AudioID:    c.Query("audioId"),
		All:        c.Query("all") == "yes",
	}

	if err := h.playlistsController.Remove(c.UserContext(), user, &req); err != nil {
		return respondError(c, err, "Failed to remove playlist", playlistErrMappings()...)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *PlaylistHandler) listMine(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	playlists, err := h.playlistsController.ListMine(c.UserContext(), user, page)
	if err != nil {
		return respondError(c, err, "Failed to list playlists", playlistErrMappings()...)
	}

	return c.JSON(fiber.Map{"playlist": playlists})
}

func (h *PlaylistHandler) getAudios(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	list, err := h.playlistsController.GetAudios(c.UserContext(), user, c.Params("playlistId"))
	if err != nil {
		return respondError(c, err, "Failed to load playlist", playlistErrMappings()...)
	}

	// a missing playlist yields an empty list rather than an error
	if list == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"list": []any{}})
	}

	return c.JSON(fiber.Map{"list": list})
}
