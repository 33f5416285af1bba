package repositories

import (
	"context"
	"errors"

	"audora/internal/database"
	"audora/internal/logger"
	. "audora/internal/models"
	"audora/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaylistRepository interface {
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*Playlist, error)
	ListAutoByOwner(ctx context.Context, ownerID uuid.UUID, page utils.Pagination) ([]*Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page utils.Pagination) ([]*Playlist, error)
	ListPublicByOwner(ctx context.Context, ownerID uuid.UUID, page utils.Pagination) ([]*Playlist, error)
	Create(ctx context.Context, playlist *Playlist) error
	Update(ctx context.Context, playlist *Playlist) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}

type playlistRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPlaylistRepository(db database.DB) PlaylistRepository {
	return &playlistRepository{
		db:  db,
		log: logger.New("playlistRepository"),
	}
}

// GetOwned returns the playlist only when it belongs to ownerID; missing or
// foreign playlists come back as nil without error
func (r *playlistRepository) GetOwned(
	ctx context.Context,
	id, ownerID uuid.UUID,
) (*Playlist, error) {
	log := r.log.Function("GetOwned")

	var playlist Playlist
	if err := r.db.SQLWithContext(ctx).
		First(&playlist, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get playlist", err, "playlistID", id, "ownerID", ownerID)
	}

	return &playlist, nil
}

// ListAutoByOwner returns the owner's system-generated playlists
func (r *playlistRepository) ListAutoByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page utils.Pagination,
) ([]*Playlist, error) {
	log := r.log.Function("ListAutoByOwner")

	var playlists []*Playlist
	if err := r.db.SQLWithContext(ctx).
		Where("owner_id = ? AND visibility = ?", ownerID, VisibilityAuto).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&playlists).Error; err != nil {
		return nil, log.Err("failed to list auto playlists", err, "ownerID", ownerID)
	}

	return playlists, nil
}

// ListByOwner returns the owner's playlists newest-first, excluding
// system-generated ones
func (r *playlistRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page utils.Pagination,
) ([]*Playlist, error) {
	log := r.log.Function("ListByOwner")

	var playlists []*Playlist
	if err := r.db.SQLWithContext(ctx).
		Where("owner_id = ? AND visibility != ?", ownerID, VisibilityAuto).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&playlists).Error; err != nil {
		return nil, log.Err("failed to list playlists by owner", err, "ownerID", ownerID)
	}

	return playlists, nil
}

func (r *playlistRepository) ListPublicByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page utils.Pagination,
) ([]*Playlist, error) {
	log := r.log.Function("ListPublicByOwner")

	var playlists []*Playlist
	if err := r.db.SQLWithContext(ctx).
		Where("owner_id = ? AND visibility = ?", ownerID, VisibilityPublic).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&playlists).Error; err != nil {
		return nil, log.Err("failed to list public playlists", err, "ownerID", ownerID)
	}

	return playlists, nil
}

func (r *playlistRepository) Create(ctx context.Context, playlist *Playlist) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(playlist).Error; err != nil {
		return log.Err("failed to create playlist", err, "ownerID", playlist.OwnerID)
	}

	return nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *Playlist) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(playlist).Error; err != nil {
		return log.Err("failed to update playlist", err, "playlistID", playlist.ID)
	}

	return nil
}

// Delete removes the playlist when owned by ownerID and reports whether a row
// was removed
func (r *playlistRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&Playlist{})
	if result.Error != nil {
		return false, log.Err("failed to delete playlist", result.Error, "playlistID", id)
	}

	return result.RowsAffected > 0, nil
}
