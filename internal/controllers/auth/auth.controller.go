package authController

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"audora/internal/constants"
	"audora/internal/database"
	"audora/internal/logger"
	. "audora/internal/models"
	"audora/internal/repositories"
	"audora/internal/services"
	"audora/internal/utils"

	"github.com/google/uuid"
)

const (
	MinNameLength     = 3
	MinPasswordLength = 8
	OTPLength         = 6
	ResetTokenBytes   = 36
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

type AuthController struct {
	userRepo       repositories.UserRepository
	tokenRepo      repositories.TokenRepository
	jwtService     *services.JWTService
	mailService    *services.MailService
	storageService *services.StorageService
	db             database.DB
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisteredUser is the response shape for a fresh, unverified account
type RegisteredUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type VerifyEmailRequest struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type UpdatePasswordRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// SignInResult bundles the session token with the signed-in profile
type SignInResult struct {
	Profile UserProfile `json:"profile"`
	Token   string      `json:"token"`
}

// FileUpload carries one multipart file into the controller
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type UpdateProfileRequest struct {
	Name   string
	Avatar *FileUpload
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request *RegisterRequest) (*RegisteredUser, error)
	VerifyEmail(ctx context.Context, request *VerifyEmailRequest) error
	ReVerify(ctx context.Context, userID string) error
	ForgotPassword(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, userID, token string) (*User, error)
	UpdatePassword(ctx context.Context, request *UpdatePasswordRequest) error
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	Logout(ctx context.Context, user *User, token string, fromAll bool) error
	UpdateProfile(ctx context.Context, user *User, request *UpdateProfileRequest) (*UserProfile, error)
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:       repos.User,
		tokenRepo:      repos.Token,
		jwtService:     services.JWT,
		mailService:    services.Mail,
		storageService: services.Storage,
		db:             db,
	}
}

// Register creates an unverified account and mails a one-time verification
// code. The address must not already be taken.
func (c *AuthController) Register(
	ctx context.Context,
	request *RegisterRequest,
) (*RegisteredUser, error) {
	log := logger.NewWithContext(ctx, "authController").Function("Register")

	name := strings.TrimSpace(request.Name)
	if len(name) < MinNameLength {
		return nil, log.ErrorWithType(ErrValidation, "name is too short")
	}
	if !strings.Contains(request.Email, "@") {
		return nil, log.ErrorWithType(ErrValidation, "invalid email address")
	}
	if len(request.Password) < MinPasswordLength {
		return nil, log.ErrorWithType(ErrValidation, "password is too short")
	}

	existing, err := c.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		return nil, log.Error("failed to check email", "error", err)
	}
	if existing != nil {
		return nil, log.ErrorWithType(ErrForbidden, "email is already in use")
	}

	user := &User{Name: name, Email: request.Email}
	if err := user.SetPassword(request.Password); err != nil {
		return nil, log.Error("failed to hash password", "error", err)
	}

	if err := c.userRepo.Create(ctx, user); err != nil {
		return nil, log.Error("failed to create user", "error", err, "email", request.Email)
	}

	if err := c.issueVerification(ctx, user); err != nil {
		log.Warn("failed to send verification mail", "userID", user.ID, "error", err)
	}

	log.Info("User registered", "userID", user.ID)

	return &RegisteredUser{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (c *AuthController) issueVerification(ctx context.Context, user *User) error {
	otp, err := utils.GenerateOTP(OTPLength)
	if err != nil {
		return err
	}

	if err := c.tokenRepo.ReplaceVerification(ctx, user.ID, HashToken(otp)); err != nil {
		return err
	}

	return c.mailService.SendVerification(user.Email, user.Name, otp)
}

// VerifyEmail consumes the one-time code and marks the account verified. The
// code is single use and expires after an hour.
func (c *AuthController) VerifyEmail(
	ctx context.Context,
	request *VerifyEmailRequest,
) error {
	log := logger.NewWithContext(ctx, "authController").Function("VerifyEmail")

	userID, err := uuid.Parse(request.UserID)
	if err != nil {
		return log.ErrorWithType(ErrForbidden, "invalid token")
	}

	token, err := c.tokenRepo.GetVerificationByOwner(ctx, userID)
	if err != nil {
		return log.Error("failed to load verification token", "error", err, "userID", userID)
	}
	if token == nil || tokenExpired(token.CreatedAt) || !token.Compare(request.Token) {
		return log.ErrorWithType(ErrForbidden, "invalid token", "userID", userID)
	}

	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return log.Error("failed to load user", "error", err, "userID", userID)
	}
	if user == nil {
		return log.ErrorWithType(ErrForbidden, "invalid token", "userID", userID)
	}

	user.Verified = true
	if err := c.userRepo.Update(ctx, user); err != nil {
		return log.Error("failed to mark user verified", "error", err, "userID", userID)
	}

	if err := c.tokenRepo.DeleteVerificationByOwner(ctx, userID); err != nil {
		log.Warn("failed to delete used verification token", "userID", userID, "error", err)
	}

	log.Info("Email verified", "userID", userID)
	return nil
}

// ReVerify rotates the verification code for an unverified account and mails
// it again
func (c *AuthController) ReVerify(ctx context.Context, userID string) error {
	log := logger.NewWithContext(ctx, "authController").Function("ReVerify")

	id, err := uuid.Parse(userID)
	if err != nil {
		return log.ErrorWithType(ErrForbidden, "invalid request")
	}

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return log.Error("failed to load user", "error", err, "userID", id)
	}
	if user == nil {
		return log.ErrorWithType(ErrForbidden, "invalid request", "userID", id)
	}

	if user.Verified {
		return log.ErrorWithType(ErrValidation, "account is already verified", "userID", id)
	}

	if err := c.issueVerification(ctx, user); err != nil {
		return log.Error("failed to issue verification", "error", err, "userID", id)
	}

	return nil
}

// ForgotPassword rotates the reset token for the account behind the address
// and mails the reset link
func (c *AuthController) ForgotPassword(ctx context.Context, email string) error {
	log := logger.NewWithContext(ctx, "authController").Function("ForgotPassword")

	user, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return log.Error("failed to load user", "error", err)
	}
	if user == nil {
		return log.ErrorWithType(ErrNotFound, "account not found")
	}

	token, err := utils.GenerateSecureToken(ResetTokenBytes)
	if err != nil {
		return log.Error("failed to generate reset token", "error", err)
	}

	if err := c.tokenRepo.ReplaceReset(ctx, user.ID, HashToken(token)); err != nil {
		return log.Error("failed to store reset token", "error", err, "userID", user.ID)
	}

	if err := c.mailService.SendPasswordReset(user.Email, user.ID.String(), token); err != nil {
		return log.Error("failed to send reset mail", "error", err, "userID", user.ID)
	}

	return nil
}

// ValidateResetToken checks a reset link's token and returns its user when
// the link is still good
func (c *AuthController) ValidateResetToken(
	ctx context.Context,
	userID, token string,
) (*User, error) {
	log := logger.NewWithContext(ctx, "authController").Function("ValidateResetToken")

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, log.ErrorWithType(ErrForbidden, "invalid token")
	}

	resetToken, err := c.tokenRepo.GetResetByOwner(ctx, id)
	if err != nil {
		return nil, log.Error("failed to load reset token", "error", err, "userID", id)
	}
	if resetToken == nil || tokenExpired(resetToken.CreatedAt) || !resetToken.Compare(token) {
		return nil, log.ErrorWithType(ErrForbidden, "invalid token", "userID", id)
	}

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, log.Error("failed to load user", "error", err, "userID", id)
	}
	if user == nil {
		return nil, log.ErrorWithType(ErrForbidden, "invalid token", "userID", id)
	}

	return user, nil
}

// UpdatePassword sets a new password after a reset. The new password must
// differ from the old one; the consumed token is removed.
func (c *AuthController) UpdatePassword(
	ctx context.Context,
	request *UpdatePasswordRequest,
) error {
	log := logger.NewWithContext(ctx, "authController").Function("UpdatePassword")

	id, err := uuid.Parse(request.UserID)
	if err != nil {
		return log.ErrorWithType(ErrForbidden, "unauthorized access")
	}

	if len(request.Password) < MinPasswordLength {
		return log.ErrorWithType(ErrValidation, "password is too short")
	}

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return log.Error("failed to load user", "error", err, "userID", id)
	}
	if user == nil {
		return log.ErrorWithType(ErrForbidden, "unauthorized access", "userID", id)
	}

	if user.ComparePassword(request.Password) {
		return log.ErrorWithType(ErrValidation, "the new password must be different")
	}

	if err := user.SetPassword(request.Password); err != nil {
		return log.Error("failed to hash password", "error", err)
	}

	if err := c.userRepo.Update(ctx, user); err != nil {
		return log.Error("failed to update password", "error", err, "userID", id)
	}

	if err := c.tokenRepo.DeleteResetByOwner(ctx, id); err != nil {
		log.Warn("failed to delete used reset token", "userID", id, "error", err)
	}

	if err := c.mailService.SendPasswordResetSuccess(user.Email, user.Name); err != nil {
		log.Warn("failed to send reset confirmation", "userID", id, "error", err)
	}

	log.Info("Password updated", "userID", id)
	return nil
}

// SignIn verifies the credentials, issues a session token and remembers it on
// the user. Wrong email and wrong password are indistinguishable to the
// caller.
func (c *AuthController) SignIn(
	ctx context.Context,
	email, password string,
) (*SignInResult, error) {
	log := logger.NewWithContext(ctx, "authController").Function("SignIn")

	user, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, log.Error("failed to load user", "error", err)
	}
	if user == nil || !user.ComparePassword(password) {
		return nil, log.ErrorWithType(ErrForbidden, "email/password mismatch")
	}

	token, err := c.jwtService.Sign(user.ID)
	if err != nil {
		return nil, log.Error("failed to sign session token", "error", err, "userID", user.ID)
	}

	user.Tokens = append(user.Tokens, token)
	if err := c.userRepo.Update(ctx, user); err != nil {
		return nil, log.Error("failed to store session token", "error", err, "userID", user.ID)
	}

	log.Info("User signed in", "userID", user.ID)

	return &SignInResult{Profile: user.ToProfile(), Token: token}, nil
}

// Logout revokes the current session, or all of the user's sessions
func (c *AuthController) Logout(
	ctx context.Context,
	user *User,
	token string,
	fromAll bool,
) error {
	log := logger.NewWithContext(ctx, "authController").Function("Logout")

	if fromAll {
		user.Tokens = nil
	} else {
		user.RemoveToken(token)
	}

	if err := c.userRepo.Update(ctx, user); err != nil {
		return log.Error("failed to revoke session", "error", err, "userID", user.ID)
	}

	log.Info("User logged out", "userID", user.ID, "fromAll", fromAll)
	return nil
}

// UpdateProfile renames the user and optionally replaces the avatar. The old
// avatar object is removed from storage after a successful swap.
func (c *AuthController) UpdateProfile(
	ctx context.Context,
	user *User,
	request *UpdateProfileRequest,
) (*UserProfile, error) {
	log := logger.NewWithContext(ctx, "authController").Function("UpdateProfile")

	name := strings.TrimSpace(request.Name)
	if len(name) < MinNameLength {
		return nil, log.ErrorWithType(ErrValidation, "invalid name")
	}
	user.Name = name

	if request.Avatar != nil {
		if c.storageService == nil {
			return nil, log.ErrorWithType(ErrValidation, "file uploads are disabled")
		}

		oldKey := user.AvatarKey
		key, url, err := c.storageService.Upload(
			ctx,
			"avatars",
			request.Avatar.Filename,
			request.Avatar.ContentType,
			request.Avatar.Reader,
			request.Avatar.Size,
		)
		if err != nil {
			return nil, log.Error("failed to upload avatar", "error", err, "userID", user.ID)
		}

		user.AvatarKey = key
		user.AvatarURL = url

		if oldKey != "" {
			if err := c.storageService.Delete(ctx, oldKey); err != nil {
				log.Warn("failed to delete old avatar", "userID", user.ID, "error", err)
			}
		}
	}

	if err := c.userRepo.Update(ctx, user); err != nil {
		return nil, log.Error("failed to update profile", "error", err, "userID", user.ID)
	}

	profile := user.ToProfile()
	return &profile, nil
}

func tokenExpired(createdAt time.Time) bool {
	return time.Since(createdAt) > constants.TokenExpiry
}
