package handlers

import (
	"mime/multipart"

	"audora/internal/app"
	authController "audora/internal/controllers/auth"
	"audora/internal/handlers/middleware"
	"audora/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/create", h.create)
	auth.Post("/verify-email", h.verifyEmail)
	auth.Post("/re-verify-email", h.reVerifyEmail)
	auth.Post("/forget-password", h.forgetPassword)
	auth.Post("/verify-pass-reset-token", h.middleware.ResetTokenValid(), h.grantValid)
	auth.Post("/update-password", h.middleware.ResetTokenValid(), h.updatePassword)
	auth.Post("/sign-in", h.signIn)
	auth.Get("/is-auth", h.middleware.MustAuth(), h.sendProfile)
	auth.Post("/update-profile", h.middleware.MustAuth(), h.updateProfile)
	auth.Post("/log-out", h.middleware.MustAuth(), h.logOut)
}

func authErrMappings() []errMapping {
	return []errMapping{
		{Err: authController.ErrValidation, Status: fiber.StatusUnprocessableEntity},
		{Err: authController.ErrNotFound, Status: fiber.StatusNotFound},
		{Err: authController.ErrForbidden, Status: fiber.StatusForbidden},
	}
}

func (h *AuthHandler) create(c *fiber.Ctx) error {
	var req authController.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.authController.Register(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "Failed to create account", authErrMappings()...)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) verifyEmail(c *fiber.Ctx) error {
	var req authController.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.authController.VerifyEmail(c.UserContext(), &req); err != nil {
		return respondError(c, err, "Failed to verify email", authErrMappings()...)
	}

	return c.JSON(fiber.Map{"message": "Your email is verified."})
}

func (h *AuthHandler) reVerifyEmail(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.authController.ReVerify(c.UserContext(), req.UserID); err != nil {
		return respondError(c, err, "Failed to resend verification", authErrMappings()...)
	}

	return c.JSON(fiber.Map{"message": "Please check your mail."})
}

func (h *AuthHandler) forgetPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.authController.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return respondError(c, err, "Failed to send reset link", authErrMappings()...)
	}

	return c.JSON(fiber.Map{"message": "Check your registered mail."})
}

func (h *AuthHandler) grantValid(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"valid": true})
}

func (h *AuthHandler) updatePassword(c *fiber.Ctx) error {
	var req authController.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.authController.UpdatePassword(c.UserContext(), &req); err != nil {
		return respondError(c, err, "Failed to update password", authErrMappings()...)
	}

	return c.JSON(fiber.Map{"message": "Password reset successfully."})
}

func (h *AuthHandler) signIn(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.authController.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "Failed to sign in", authErrMappings()...)
	}

	return c.JSON(result)
}

func (h *AuthHandler) sendProfile(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	return c.JSON(fiber.Map{"profile": user.ToProfile()})
}

func (h *AuthHandler) updateProfile(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	req := authController.UpdateProfileRequest{
		Name: c.FormValue("name"),
	}

	fileHeader, err := c.FormFile("avatar")
	if err == nil && fileHeader != nil {
		upload, file, err := openUpload(fileHeader)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid avatar file",
			})
		}
		defer file.Close()
		req.Avatar = upload
	}

	profile, err := h.authController.UpdateProfile(c.UserContext(), user, &req)
	if err != nil {
		return respondError(c, err, "Failed to update profile", authErrMappings()...)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *AuthHandler) logOut(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized request",
		})
	}

	fromAll := c.Query("fromAll") == "yes"
	token := middleware.GetToken(c)

	if err := h.authController.Logout(c.UserContext(), user, token, fromAll); err != nil {
		return respondError(c, err, "Failed to log out", authErrMappings()...)
	}

	return c.JSON(fiber.Map{"success": true})
}

func openUpload(fileHeader *multipart.FileHeader) (*authController.FileUpload, multipart.File, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &authController.FileUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}, file, nil
}
