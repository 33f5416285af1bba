package handlers

import (
	"mime/multipart"

	"audora/internal/app"
	audiosController "audora/internal/controllers/audios"
	"audora/internal/handlers/middleware"
	"audora/internal/logger"
	"audora/internal/models"
	"audora/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AudioHandler struct {
	Handler
	audiosController audiosController.AudiosControllerInterface
}

func NewAudioHandler(app app.App, router fiber.Router) *AudioHandler {
	log := logger.New("handlers").File("audio_handler")
	return &AudioHandler{
		audiosController: app.Controllers.Audios,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AudioHandler) Register() {
	audio := h.router.Group("/audio")
	audio.Post("/create", h.middleware.MustAuth(), h.middleware.MustVerified(), h.create)
	audio.Patch("/:audioId", h.middleware.MustAuth(), h.middleware.MustVerified(), h.update)
	audio.Get("/latest", h.latest)
}

func audioErrMappings() []errMapping {
	return []errMapping{
		{Err: audiosController.ErrValidation, Status: fiber.StatusUnprocessableEntity},
		{Err: audiosController.ErrNotFound, Status: fiber.StatusNotFound},
	}
}

func (h *AudioHandler) create(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	req := audiosController.CreateAudioRequest{
		Title:    c.FormValue("title"),
		About:    c.FormValue("about"),
		Category: models.Category(c.FormValue("category")),
	}

	fileUpload, file, err := h.formUpload(c, "file")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Audio file is missing",
		})
	}
	defer file.Close()
	req.File = fileUpload

	if posterUpload, poster, err := h.formUpload(c, "poster"); err == nil {
		defer poster.Close()
		req.Poster = posterUpload
	}

	summary, err := h.audiosController.Create(c.UserContext(), user, &req)
	if err != nil {
		return respondError(c, err, "Failed to create audio", audioErrMappings()...)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"audio": summary})
}

func (h *AudioHandler) update(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	req := audiosController.UpdateAudioRequest{
		AudioID:  c.Params("audioId"),
		Title:    c.FormValue("title"),
		About:    c.FormValue("about"),
		Category: models.Category(c.FormValue("category")),
	}

	if posterUpload, poster, err := h.formUpload(c, "poster"); err == nil {
		defer poster.Close()
		req.Poster = posterUpload
	}

	summary, err := h.audiosController.Update(c.UserContext(), user, &req)
	if err != nil {
		return respondError(c, err, "Failed to update audio", audioErrMappings()...)
	}

	return c.JSON(fiber.Map{"audio": summary})
}

func (h *AudioHandler) latest(c *fiber.Ctx) error {
	page := utils.ParsePagination(c.Query("pageNumber"), c.Query("limit"))

	audios, err := h.audiosController.Latest(c.UserContext(), page)
	if err != nil {
		return respondError(c, err, "Failed to list audios", audioErrMappings()...)
	}

	return c.JSON(fiber.Map{"audios": audios})
}

func (h *AudioHandler) formUpload(
	c *fiber.Ctx,
	field string,
) (*audiosController.FileUpload, multipart.File, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &audiosController.FileUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}, file, nil
}
