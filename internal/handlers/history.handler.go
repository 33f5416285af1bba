package handlers

import (
	"encoding/json"

	"audora/internal/app"
	historyController "audora/internal/controllers/history"
	"audora/internal/handlers/middleware"
	"audora/internal/logger"
	"audora/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type HistoryHandler struct {
	Handler
	historyController historyController.HistoryControllerInterface
}

func NewHistoryHandler(app app.App, router fiber.Router) *HistoryHandler {
	log := logger.New("handlers").File("history_handler")
	return &HistoryHandler{
		historyController: app.Controllers.History,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *HistoryHandler) Register() {
	history := h.router.Group("/history", h.middleware.MustAuth())
	history.Post("", h.recordProgress)
	history.Delete("", h.remove)
	history.Get("", h.list)
	history.Get("/recently-played", h.recentlyPlayed)
}

func historyErrMappings() []errMapping {
	return []errMapping{
		{Err: historyController.ErrValidation, Status: fiber.StatusUnprocessableEntity},
		{Err: historyController.ErrNotFound, Status: fiber.StatusNotFound},
	}
}

func (h *HistoryHandler) recordProgress(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	var req historyController.RecordProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.historyController.RecordProgress(c.UserContext(), user, &req); err != nil {
		return respondError(c, err, "Failed to record progress", historyErrMappings()...)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *HistoryHandler) remove(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	req := historyController.RemoveRequest{
		All: c.Query("all") == "yes",
	}

	if raw := c.Query("histories"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Histories); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Invalid histories list",
			})
		}
	}

	if err := h.historyController.Remove(c.UserContext(), user, &req); err != nil {
		return respondError(c, err, "Failed to remove history", historyErrMappings()...)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *HistoryHandler) list(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	histories, err := h.historyController.List(c.UserContext(), user, page)
	if err != nil {
		return respondError(c, err, "Failed to list history", historyErrMappings()...)
	}

	return c.JSON(fiber.Map{"histories": histories})
}

func (h *HistoryHandler) recentlyPlayed(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	audios, err := h.historyController.RecentlyPlayed(c.UserContext(), user)
	if err != nil {
		return respondError(c, err, "Failed to list recently played", historyErrMappings()...)
	}

	return c.JSON(fiber.Map{"audios": audios})
}
