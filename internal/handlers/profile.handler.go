package handlers

import (
	"audora/internal/app"
	profileController "audora/internal/controllers/profile"
	"audora/internal/handlers/middleware"
	"audora/internal/logger"
	"audora/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	Handler
	profileController profileController.ProfileControllerInterface
}

func NewProfileHandler(app app.App, router fiber.Router) *ProfileHandler {
	log := logger.New("handlers").File("profile_handler")
	return &ProfileHandler{
		profileController: app.Controllers.Profile,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ProfileHandler) Register() {
	profile := h.router.Group("/profile")
	profile.Post("/update-follower/:profileId", h.middleware.MustAuth(), h.toggleFollow)
	profile.Get("/uploads", h.middleware.MustAuth(), h.uploads)
	profile.Get("/uploads/:profileId", h.publicUploads)
	profile.Get("/info/:profileId", h.info)
	profile.Get("/playlist/:profileId", h.publicPlaylists)
	profile.Get("/followers", h.middleware.MustAuth(), h.followers)
	profile.Get("/followings", h.middleware.MustAuth(), h.followings)
	profile.Get("/is-following/:profileId", h.middleware.MustAuth(), h.isFollowing)
	profile.Get("/auto-generated", h.middleware.MustAuth(), h.autoGenerated)
}

func profileErrMappings() []errMapping {
	return []errMapping{
		{Err: profileController.ErrValidation, Status: fiber.StatusUnprocessableEntity},
		{Err: profileController.ErrNotFound, Status: fiber.StatusNotFound},
	}
}

func (h *ProfileHandler) toggleFollow(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	status, err := h.profileController.ToggleFollow(c.UserContext(), user, c.Params("profileId"))
	if err != nil {
		return respondError(c, err, "Failed to toggle follow", profileErrMappings()...)
	}

	return c.JSON(status)
}

func (h *ProfileHandler) uploads(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	audios, err := h.profileController.Uploads(c.UserContext(), user, page)
	if err != nil {
		return respondError(c, err, "Failed to list uploads", profileErrMappings()...)
	}

	return c.JSON(fiber.Map{"audios": audios})
}

func (h *ProfileHandler) publicUploads(c *fiber.Ctx) error {
	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	audios, err := h.profileController.PublicUploads(c.UserContext(), c.Params("profileId"), page)
	if err != nil {
		return respondError(c, err, "Failed to list uploads", profileErrMappings()...)
	}

	return c.JSON(fiber.Map{"audios": audios})
}

func (h *ProfileHandler) info(c *fiber.Ctx) error {
	profile, err := h.profileController.GetPublicProfile(c.UserContext(), c.Params("profileId"))
	if err != nil {
		return respondError(c, err, "Failed to load profile", profileErrMappings()...)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) publicPlaylists(c *fiber.Ctx) error {
	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	playlists, err := h.profileController.PublicPlaylists(c.UserContext(), c.Params("profileId"), page)
	if err != nil {
		return respondError(c, err, "Failed to list playlists", profileErrMappings()...)
	}

	return c.JSON(fiber.Map{"playlist": playlists})
}

func (h *ProfileHandler) followers(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	followers, err := h.profileController.Followers(c.UserContext(), user, page)
	if err != nil {
		return respondError(c, err, "Failed to list followers", profileErrMappings()...)
	}

	return c.JSON(fiber.Map{"followers": followers})
}

func (h *ProfileHandler) followings(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	followings, err := h.profileController.Followings(c.UserContext(), user, page)
	if err != nil {
		return respondError(c, err, "Failed to list followings", profileErrMappings()...)
	}

	return c.JSON(fiber.Map{"followings": followings})
}

func (h *ProfileHandler) isFollowing(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	following, err := h.profileController.IsFollowing(c.UserContext(), user, c.Params("profileId"))
	if err != nil {
		return respondError(c, err, "Failed to check follow status", profileErrMappings()...)
	}

	return c.JSON(fiber.Map{"result": following})
}

func (h *ProfileHandler) autoGenerated(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	playlists, err := h.profileController.AutoGenerated(c.UserContext(), user, page)
	if err != nil {
		return respondError(c, err, "Failed to list playlists", profileErrMappings()...)
	}

	return c.JSON(fiber.Map{"playlist": playlists})
}
