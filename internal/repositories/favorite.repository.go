package repositories

import (
	"context"
	"errors"

	"audora/internal/database"
	"audora/internal/logger"
	. "audora/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Favorite, error)
	GetByOwnerTx(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (*Favorite, error)
	CreateTx(ctx context.Context, tx *gorm.DB, favorite *Favorite) error
	UpdateTx(ctx context.Context, tx *gorm.DB, favorite *Favorite) error
}

type favoriteRepository struct {
	db  database.DB
	log logger.Logger
}

func NewFavoriteRepository(db database.DB) FavoriteRepository {
	return &favoriteRepository{
		db:  db,
		log: logger.New("favoriteRepository"),
	}
}

func (r *favoriteRepository) GetByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) (*Favorite, error) {
	return r.GetByOwnerTx(ctx, r.db.SQL, ownerID)
}

// GetByOwnerTx returns nil without error when the owner has no favorite row
// yet; the row is created lazily on first toggle
func (r *favoriteRepository) GetByOwnerTx(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) (*Favorite, error) {
	log := r.log.Function("GetByOwnerTx")

	var favorite Favorite
	if err := tx.WithContext(ctx).First(&favorite, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get favorite by owner", err, "ownerID", ownerID)
	}

	return &favorite, nil
}

func (r *favoriteRepository) CreateTx(
	ctx context.Context,
	tx *gorm.DB,
	favorite *Favorite,
) error {
	log := r.log.Function("CreateTx")

	if err := tx.WithContext(ctx).Create(favorite).Error; err != nil {
		return log.Err("failed to create favorite", err, "ownerID", favorite.OwnerID)
	}

	return nil
}

func (r *favoriteRepository) UpdateTx(
	ctx context.Context,
	tx *gorm.DB,
	favorite *Favorite,
) error {
	log := r.log.Function("UpdateTx")

	if err := tx.WithContext(ctx).Save(favorite).Error; err != nil {
		return log.Err("failed to update favorite", err, "ownerID", favorite.OwnerID)
	}

	return nil
}
