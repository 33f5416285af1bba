package profileController

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
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type ProfileController struct {
	userRepo           repositories.UserRepository
	audioRepo          repositories.AudioRepository
	playlistRepo       repositories.PlaylistRepository
	transactionService *services.TransactionService
	db                 database.DB
}

// FollowStatus reports which way a follow toggle went
type FollowStatus struct {
	Status string `json:"status"`
}

// PublicProfile is the reduced profile shape shown to other users
type PublicProfile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	Followers int    `json:"followers"`
}

// FollowEntry is one row in a followers or followings listing
type FollowEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type ProfileControllerInterface interface {
	ToggleFollow(ctx context.Context, user *User, profileID string) (*FollowStatus, error)
	GetPublicProfile(ctx context.Context, profileID string) (*PublicProfile, error)
	Uploads(ctx context.Context, user *User, page utils.Pagination) ([]AudioSummary, error)
	PublicUploads(ctx context.Context, profileID string, page utils.Pagination) ([]AudioSummary, error)
	PublicPlaylists(ctx context.Context, profileID string, page utils.Pagination) ([]PlaylistSummary, error)
	Followers(ctx context.Context, user *User, page utils.Pagination) ([]FollowEntry, error)
	Followings(ctx context.Context, user *User, page utils.Pagination) ([]FollowEntry, error)
	IsFollowing(ctx context.Context, user *User, profileID string) (bool, error)
	AutoGenerated(ctx context.Context, user *User, page utils.Pagination) ([]PlaylistSummary, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) ProfileControllerInterface {
	return &ProfileController{
		userRepo:           repos.User,
		audioRepo:          repos.Audio,
		playlistRepo:       repos.Playlist,
		transactionService: services.Transaction,
		db:                 db,
	}
}

// ToggleFollow flips whether the user follows the profile. Both sides of the
// relation change together in one transaction; following yourself is
// rejected.
func (c *ProfileController) ToggleFollow(
	ctx context.Context,
	user *User,
	profileID string,
) (*FollowStatus, error) {
	log := logger.NewWithContext(ctx, "profileController").Function("ToggleFollow")

	id, err := uuid.Parse(profileID)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid profile id", "profileID", profileID)
	}
	if id == user.ID {
		return nil, log.ErrorWithType(ErrValidation, "cannot follow yourself", "userID", user.ID)
	}

	var status string
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		profile, err := c.userRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return log.Error("failed to load profile", "error", err, "profileID", id)
		}
		if profile == nil {
			return log.ErrorWithType(ErrNotFound, "profile not found", "profileID", id)
		}

		if containsID(user.Followings, id) {
			user.Followings = removeID(user.Followings, id)
			profile.Followers = removeID(profile.Followers, user.ID)
			status = "removed"
		} else {
			user.Followings = append(user.Followings, id)
			profile.Followers = append(profile.Followers, user.ID)
			status = "added"
		}

		if err := c.userRepo.UpdateTx(ctx, tx, user); err != nil {
			return log.Error("failed to update followings", "error", err, "userID", user.ID)
		}
		return c.userRepo.UpdateTx(ctx, tx, profile)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Follow toggled", "userID", user.ID, "profileID", id, "status", status)

	return &FollowStatus{Status: status}, nil
}

func (c *ProfileController) GetPublicProfile(
	ctx context.Context,
	profileID string,
) (*PublicProfile, error) {
	log := logger.NewWithContext(ctx, "profileController").Function("GetPublicProfile")

	id, err := uuid.Parse(profileID)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid profile id", "profileID", profileID)
	}

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, log.Error("failed to load profile", "error", err, "profileID", id)
	}
	if user == nil {
		return nil, log.ErrorWithType(ErrNotFound, "profile not found", "profileID", id)
	}

	return &PublicProfile{
		ID:        user.ID.String(),
		Name:      user.Name,
		Avatar:    user.AvatarURL,
		Followers: len(user.Followers),
	}, nil
}

// Uploads pages through the user's own catalog entries, newest first
func (c *ProfileController) Uploads(
	ctx context.Context,
	user *User,
	page utils.Pagination,
) ([]AudioSummary, error) {
	return c.uploadsFor(ctx, user.ID, user.Name, page)
}

// PublicUploads pages through another profile's catalog entries
func (c *ProfileController) PublicUploads(
	ctx context.Context,
	profileID string,
	page utils.Pagination,
) ([]AudioSummary, error) {
	log := logger.NewWithContext(ctx, "profileController").Function("PublicUploads")

	id, err := uuid.Parse(profileID)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid profile id", "profileID", profileID)
	}

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, log.Error("failed to load profile", "error", err, "profileID", id)
	}
	if user == nil {
		return nil, log.ErrorWithType(ErrNotFound, "profile not found", "profileID", id)
	}

	return c.uploadsFor(ctx, user.ID, user.Name, page)
}

func (c *ProfileController) uploadsFor(
	ctx context.Context,
	ownerID uuid.UUID,
	ownerName string,
	page utils.Pagination,
) ([]AudioSummary, error) {
	log := logger.NewWithContext(ctx, "profileController").Function("uploadsFor")

	audios, err := c.audioRepo.GetByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, log.Error("failed to list uploads", "error", err, "ownerID", ownerID)
	}

	summaries := make([]AudioSummary, 0, len(audios))
	for _, audio := range audios {
		summaries = append(summaries, audio.ToSummary(ownerName))
	}

	return summaries, nil
}

// PublicPlaylists pages through a profile's shared playlists
func (c *ProfileController) PublicPlaylists(
	ctx context.Context,
	profileID string,
	page utils.Pagination,
) ([]PlaylistSummary, error) {
	log := logger.NewWithContext(ctx, "profileController").Function("PublicPlaylists")

	id, err := uuid.Parse(profileID)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid profile id", "profileID", profileID)
	}

	playlists, err := c.playlistRepo.ListPublicByOwner(ctx, id, page)
	if err != nil {
		return nil, log.Error("failed to list public playlists", "error", err, "profileID", id)
	}

	return toPlaylistSummaries(playlists), nil
}

func (c *ProfileController) Followers(
	ctx context.Context,
	user *User,
	page utils.Pagination,
) ([]FollowEntry, error) {
	return c.hydrateFollowList(ctx, user.Followers, page)
}

func (c *ProfileController) Followings(
	ctx context.Context,
	user *User,
	page utils.Pagination,
) ([]FollowEntry, error) {
	return c.hydrateFollowList(ctx, user.Followings, page)
}

func (c *ProfileController) hydrateFollowList(
	ctx context.Context,
	ids []uuid.UUID,
	page utils.Pagination,
) ([]FollowEntry, error) {
	log := logger.NewWithContext(ctx, "profileController").Function("hydrateFollowList")

	window := utils.SlicePage(ids, page)
	users, err := c.userRepo.GetByIDs(ctx, window)
	if err != nil {
		return nil, log.Error("failed to hydrate follow list", "error", err)
	}

	byID := make(map[uuid.UUID]*User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]FollowEntry, 0, len(window))
	for _, id := range window {
		u, ok := byID[id]
		if !ok {
			continue
		}
		entries = append(entries, FollowEntry{
			ID:     u.ID.String(),
			Name:   u.Name,
			Avatar: u.AvatarURL,
		})
	}

	return entries, nil
}

// IsFollowing reports whether the user already follows the profile
func (c *ProfileController) IsFollowing(
	ctx context.Context,
	user *User,
	profileID string,
) (bool, error) {
	log := logger.NewWithContext(ctx, "profileController").Function("IsFollowing")

	id, err := uuid.Parse(profileID)
	if err != nil {
		return false, log.ErrorWithType(ErrValidation, "invalid profile id", "profileID", profileID)
	}

	return containsID(user.Followings, id), nil
}

// AutoGenerated returns the user's system-generated playlists
func (c *ProfileController) AutoGenerated(
	ctx context.Context,
	user *User,
	page utils.Pagination,
) ([]PlaylistSummary, error) {
	log := logger.NewWithContext(ctx, "profileController").Function("AutoGenerated")

	playlists, err := c.playlistRepo.ListAutoByOwner(ctx, user.ID, page)
	if err != nil {
		return nil, log.Error("failed to list auto playlists", "error", err, "userID", user.ID)
	}

	return toPlaylistSummaries(playlists), nil
}

func toPlaylistSummaries(playlists []*Playlist) []PlaylistSummary {
	summaries := make([]PlaylistSummary, 0, len(playlists))
	for _, playlist := range playlists {
		summaries = append(summaries, PlaylistSummary{
			ID:         playlist.ID.String(),
			Title:      playlist.Title,
			ItemsCount: len(playlist.Items),
			Visibility: playlist.Visibility,
		})
	}
	return summaries
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	kept := make([]uuid.UUID, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			kept = append(kept, candidate)
		}
	}
	return kept
}
