package playlistsController

import (
	"context"
	"errors"

	"audora/internal/database"
	"audora/internal/logger"
	. "audora/internal/models"
	"audora/internal/repositories"
	"audora/internal/services"
	"audora/internal/utils"

	"github.com/google/uuid"
)

const MaxTitleLength = 100

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type PlaylistsController struct {
	playlistRepo repositories.PlaylistRepository
	audioRepo    repositories.AudioRepository
	db           database.DB
}

type CreatePlaylistRequest struct {
	Title      string     `json:"title"`
	AudioID    string     `json:"audioId,omitempty"`
	Visibility Visibility `json:"visibility"`
}

type UpdatePlaylistRequest struct {
	PlaylistID string     `json:"playlistId"`
	Title      string     `json:"title"`
	AudioID    string     `json:"audioId,omitempty"`
	Visibility Visibility `json:"visibility"`
}

type RemovePlaylistRequest struct {
	PlaylistID string
	AudioID    string
	All        bool
}

// PlaylistAudios is the hydrated contents of one playlist
type PlaylistAudios struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Audios []AudioSummary `json:"audios"`
}

type PlaylistsControllerInterface interface {
	Create(ctx context.Context, user *User, request *CreatePlaylistRequest) (*PlaylistSummary, error)
	Update(ctx context.Context, user *User, request *UpdatePlaylistRequest) (*PlaylistSummary, error)
	Remove(ctx context.Context, user *User, request *RemovePlaylistRequest) error
	ListMine(ctx context.Context, user *User, page utils.Pagination) ([]PlaylistSummary, error)
	GetAudios(ctx context.Context, user *User, playlistID string) (*PlaylistAudios, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) PlaylistsControllerInterface {
	return &PlaylistsController{
		playlistRepo: repos.Playlist,
		audioRepo:    repos.Audio,
		db:           db,
	}
}

func validateTitleAndVisibility(title string, visibility Visibility) error {
	if title == "" {
		return errors.New("title is required")
	}
	if len(title) > MaxTitleLength {
		return errors.New("title exceeds maximum length")
	}
	if visibility != VisibilityPublic && visibility != VisibilityPrivate {
		return errors.New("visibility must be public or private")
	}
	return nil
}

// Create makes a new playlist, optionally seeded with one audio. The seed
// audio must exist; system-generated visibility cannot be chosen.
func (c *PlaylistsController) Create(
	ctx context.Context,
	user *User,
	request *CreatePlaylistRequest,
) (*PlaylistSummary, error) {
	log := logger.NewWithContext(ctx, "playlistsController").Function("Create")

	if err := validateTitleAndVisibility(request.Title, request.Visibility); err != nil {
		return nil, log.ErrorWithType(ErrValidation, err.Error())
	}

	playlist := &Playlist{
		OwnerID:    user.ID,
		Title:      request.Title,
		Visibility: request.Visibility,
	}

	if request.AudioID != "" {
		audioID, err := uuid.Parse(request.AudioID)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "invalid audio id", "audioID", request.AudioID)
		}

		audio, err := c.audioRepo.GetByID(ctx, audioID)
		if err != nil {
			return nil, log.Error("failed to load audio", "error", err, "audioID", audioID)
		}
		if audio == nil {
			return nil, log.ErrorWithType(ErrNotFound, "audio not found", "audioID", audioID)
		}

		playlist.Add(audioID)
	}

	if err := c.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, log.Error("failed to create playlist", "error", err, "userID", user.ID)
	}

	log.Info("Playlist created", "userID", user.ID, "playlistID", playlist.ID)

	return &PlaylistSummary{
		ID:         playlist.ID.String(),
		Title:      playlist.Title,
		Visibility: playlist.Visibility,
	}, nil
}

// Update renames or re-shares an owned playlist and can append one audio with
// set semantics
func (c *PlaylistsController) Update(
	ctx context.Context,
	user *User,
	request *UpdatePlaylistRequest,
) (*PlaylistSummary, error) {
	log := logger.NewWithContext(ctx, "playlistsController").Function("Update")

	playlistID, err := uuid.Parse(request.PlaylistID)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid playlist id", "playlistID", request.PlaylistID)
	}

	if err := validateTitleAndVisibility(request.Title, request.Visibility); err != nil {
		return nil, log.ErrorWithType(ErrValidation, err.Error())
	}

	playlist, err := c.playlistRepo.GetOwned(ctx, playlistID, user.ID)
	if err != nil {
		return nil, log.Error("failed to load playlist", "error", err, "playlistID", playlistID)
	}
	if playlist == nil {
		return nil, log.ErrorWithType(ErrNotFound, "playlist not found", "playlistID", playlistID)
	}

	playlist.Title = request.Title
	playlist.Visibility = request.Visibility

	if request.AudioID != "" {
		audioID, err := uuid.Parse(request.AudioID)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "invalid audio id", "audioID", request.AudioID)
		}

		audio, err := c.audioRepo.GetByID(ctx, audioID)
		if err != nil {
			return nil, log.Error("failed to load audio", "error", err, "audioID", audioID)
		}
		if audio == nil {
			return nil, log.ErrorWithType(ErrNotFound, "audio not found", "audioID", audioID)
		}

		playlist.Add(audioID)
	}

	if err := c.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, log.Error("failed to update playlist", "error", err, "playlistID", playlistID)
	}

	return &PlaylistSummary{
		ID:         playlist.ID.String(),
		Title:      playlist.Title,
		Visibility: playlist.Visibility,
	}, nil
}

// Remove deletes the whole playlist or pulls one audio out of it
func (c *PlaylistsController) Remove(
	ctx context.Context,
	user *User,
	request *RemovePlaylistRequest,
) error {
	log := logger.NewWithContext(ctx, "playlistsController").Function("Remove")

	playlistID, err := uuid.Parse(request.PlaylistID)
	if err != nil {
		return log.ErrorWithType(ErrValidation, "invalid playlist id", "playlistID", request.PlaylistID)
	}

	if request.All {
		removed, err := c.playlistRepo.Delete(ctx, playlistID, user.ID)
		if err != nil {
			return log.Error("failed to delete playlist", "error", err, "playlistID", playlistID)
		}
		if !removed {
			return log.ErrorWithType(ErrNotFound, "playlist not found", "playlistID", playlistID)
		}
		return nil
	}

	if request.AudioID == "" {
		return nil
	}

	audioID, err := uuid.Parse(request.AudioID)
	if err != nil {
		return log.ErrorWithType(ErrValidation, "invalid audio id", "audioID", request.AudioID)
	}

	playlist, err := c.playlistRepo.GetOwned(ctx, playlistID, user.ID)
	if err != nil {
		return log.Error("failed to load playlist", "error", err, "playlistID", playlistID)
	}
	if playlist == nil {
		return log.ErrorWithType(ErrNotFound, "playlist not found", "playlistID", playlistID)
	}

	playlist.Remove(audioID)
	if err := c.playlistRepo.Update(ctx, playlist); err != nil {
		return log.Error("failed to update playlist", "error", err, "playlistID", playlistID)
	}

	return nil
}

// ListMine pages through the user's own playlists newest-first, hiding
// system-generated ones
func (c *PlaylistsController) ListMine(
	ctx context.Context,
	user *User,
	page utils.Pagination,
) ([]PlaylistSummary, error) {
	log := logger.NewWithContext(ctx, "playlistsController").Function("ListMine")

	playlists, err := c.playlistRepo.ListByOwner(ctx, user.ID, page)
	if err != nil {
		return nil, log.Error("failed to list playlists", "error", err, "userID", user.ID)
	}

	summaries := make([]PlaylistSummary, 0, len(playlists))
	for _, playlist := range playlists {
		summaries = append(summaries, PlaylistSummary{
			ID:         playlist.ID.String(),
			Title:      playlist.Title,
			ItemsCount: len(playlist.Items),
			Visibility: playlist.Visibility,
		})
	}

	return summaries, nil
}

// GetAudios hydrates an owned playlist's items into audio summaries. A
// missing playlist yields an empty result rather than an error.
func (c *PlaylistsController) GetAudios(
	ctx context.Context,
	user *User,
	playlistID string,
) (*PlaylistAudios, error) {
	log := logger.NewWithContext(ctx, "playlistsController").Function("GetAudios")

	id, err := uuid.Parse(playlistID)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid playlist id", "playlistID", playlistID)
	}

	playlist, err := c.playlistRepo.GetOwned(ctx, id, user.ID)
	if err != nil {
		return nil, log.Error("failed to load playlist", "error", err, "playlistID", id)
	}
	if playlist == nil {
		return nil, nil
	}

	summaries, err := c.audioRepo.GetSummariesByIDs(ctx, playlist.Items)
	if err != nil {
		return nil, log.Error("failed to hydrate playlist", "error", err, "playlistID", id)
	}

	return &PlaylistAudios{
		ID:     playlist.ID.String(),
		Title:  playlist.Title,
		Audios: summaries,
	}, nil
}
