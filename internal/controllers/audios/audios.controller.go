package audiosController

import (
	"context"
	"errors"
	"io"

	"audora/internal/database"
	"audora/internal/logger"
	. "audora/internal/models"
	"audora/internal/repositories"
	"audora/internal/services"
	"audora/internal/utils"

	"github.com/google/uuid"
)

const MaxAboutLength = 1000

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type AudiosController struct {
	audioRepo      repositories.AudioRepository
	storageService *services.StorageService
	db             database.DB
}

// FileUpload carries one multipart file into the controller
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type CreateAudioRequest struct {
	Title    string
	About    string
	Category Category
	File     *FileUpload
	Poster   *FileUpload
}

type UpdateAudioRequest struct {
	AudioID  string
	Title    string
	About    string
	Category Category
	Poster   *FileUpload
}

type AudiosControllerInterface interface {
	Create(ctx context.Context, user *User, request *CreateAudioRequest) (*AudioSummary, error)
	Update(ctx context.Context, user *User, request *UpdateAudioRequest) (*AudioSummary, error)
	Latest(ctx context.Context, page utils.Pagination) ([]AudioSummary, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) AudiosControllerInterface {
	return &AudiosController{
		audioRepo:      repos.Audio,
		storageService: services.Storage,
		db:             db,
	}
}

// Create uploads the audio file (and optional poster) to object storage and
// persists the catalog entry
func (c *AudiosController) Create(
	ctx context.Context,
	user *User,
	request *CreateAudioRequest,
) (*AudioSummary, error) {
	log := logger.NewWithContext(ctx, "audiosController").Function("Create")

	if request.Title == "" {
		return nil, log.ErrorWithType(ErrValidation, "title is required")
	}
	if len(request.About) > MaxAboutLength {
		return nil, log.ErrorWithType(ErrValidation, "about exceeds maximum length")
	}
	if !request.Category.IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "invalid category", "category", request.Category)
	}
	if request.File == nil {
		return nil, log.ErrorWithType(ErrValidation, "audio file is required")
	}
	if c.storageService == nil {
		return nil, log.ErrorWithType(ErrValidation, "file uploads are disabled")
	}

	fileKey, fileURL, err := c.storageService.Upload(
		ctx, "audios", request.File.Filename, request.File.ContentType,
		request.File.Reader, request.File.Size,
	)
	if err != nil {
		return nil, log.Error("failed to upload audio file", "error", err, "userID", user.ID)
	}

	audio := &Audio{
		Title:    request.Title,
		About:    request.About,
		OwnerID:  user.ID,
		Category: request.Category,
		FileURL:  fileURL,
		FileKey:  fileKey,
	}

	if request.Poster != nil {
		posterKey, posterURL, err := c.storageService.Upload(
			ctx, "posters", request.Poster.Filename, request.Poster.ContentType,
			request.Poster.Reader, request.Poster.Size,
		)
		if err != nil {
			return nil, log.Error("failed to upload poster", "error", err, "userID", user.ID)
		}
		audio.PosterKey = posterKey
		audio.PosterURL = posterURL
	}

	if err := c.audioRepo.Create(ctx, audio); err != nil {
		return nil, log.Error("failed to create audio", "error", err, "userID", user.ID)
	}

	log.Info("Audio created", "userID", user.ID, "audioID", audio.ID)

	summary := audio.ToSummary(user.Name)
	return &summary, nil
}

// Update edits an owned catalog entry; a new poster replaces the old object
// in storage
func (c *AudiosController) Update(
	ctx context.Context,
	user *User,
	request *UpdateAudioRequest,
) (*AudioSummary, error) {
	log := logger.NewWithContext(ctx, "audiosController").Function("Update")

	audioID, err := uuid.Parse(request.AudioID)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid audio id", "audioID", request.AudioID)
	}

	audio, err := c.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return nil, log.Error("failed to load audio", "error", err, "audioID", audioID)
	}
	if audio == nil || audio.OwnerID != user.ID {
		return nil, log.ErrorWithType(ErrNotFound, "audio not found", "audioID", audioID)
	}

	if request.Title != "" {
		audio.Title = request.Title
	}
	if request.About != "" {
		if len(request.About) > MaxAboutLength {
			return nil, log.ErrorWithType(ErrValidation, "about exceeds maximum length")
		}
		audio.About = request.About
	}
	if request.Category != "" {
		if !request.Category.IsValid() {
			return nil, log.ErrorWithType(ErrValidation, "invalid category", "category", request.Category)
		}
		audio.Category = request.Category
	}

	if request.Poster != nil {
		if c.storageService == nil {
			return nil, log.ErrorWithType(ErrValidation, "file uploads are disabled")
		}

		oldKey := audio.PosterKey
		posterKey, posterURL, err := c.storageService.Upload(
			ctx, "posters", request.Poster.Filename, request.Poster.ContentType,
			request.Poster.Reader, request.Poster.Size,
		)
		if err != nil {
			return nil, log.Error("failed to upload poster", "error", err, "audioID", audioID)
		}
		audio.PosterKey = posterKey
		audio.PosterURL = posterURL

		if oldKey != "" {
			if err := c.storageService.Delete(ctx, oldKey); err != nil {
				log.Warn("failed to delete old poster", "audioID", audioID, "error", err)
			}
		}
	}

	if err := c.audioRepo.Update(ctx, audio); err != nil {
		return nil, log.Error("failed to update audio", "error", err, "audioID", audioID)
	}

	summary := audio.ToSummary(user.Name)
	return &summary, nil
}

// Latest returns the newest catalog entries for the landing feed
func (c *AudiosController) Latest(
	ctx context.Context,
	page utils.Pagination,
) ([]AudioSummary, error) {
	log := logger.NewWithContext(ctx, "audiosController").Function("Latest")

	audios, err := c.audioRepo.GetLatest(ctx, page)
	if err != nil {
		return nil, log.Error("failed to list latest audios", "error", err)
	}

	ids := make([]uuid.UUID, 0, len(audios))
	for _, audio := range audios {
		ids = append(ids, audio.ID)
	}

	summaries, err := c.audioRepo.GetSummariesByIDs(ctx, ids)
	if err != nil {
		return nil, log.Error("failed to hydrate latest audios", "error", err)
	}

	return summaries, nil
}
