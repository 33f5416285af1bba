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

type HistoryRepository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*History, error)
	Create(ctx context.Context, history *History) error
	Update(ctx context.Context, history *History) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type historyRepository struct {
	db  database.DB
	log logger.Logger
}

func NewHistoryRepository(db database.DB) HistoryRepository {
	return &historyRepository{
		db:  db,
		log: logger.New("historyRepository"),
	}
}

// GetByOwner returns nil without error when the owner has no history row yet
func (r *historyRepository) GetByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) (*History, error) {
	log := r.log.Function("GetByOwner")

	var history History
	if err := r.db.SQLWithContext(ctx).First(&history, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get history by owner", err, "ownerID", ownerID)
	}

	return &history, nil
}

func (r *historyRepository) Create(ctx context.Context, history *History) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(history).Error; err != nil {
		return log.Err("failed to create history", err, "ownerID", history.OwnerID)
	}

	return nil
}

func (r *historyRepository) Update(ctx context.Context, history *History) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(history).Error; err != nil {
		return log.Err("failed to update history", err, "ownerID", history.OwnerID)
	}

	return nil
}

// DeleteByOwner removes the history row outright. owner_id carries a unique
// index, so a soft-deleted row would block a later Create for the same owner.
func (r *historyRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	log := r.log.Function("DeleteByOwner")

	if err := r.db.SQLWithContext(ctx).Unscoped().
		Where("owner_id = ?", ownerID).
		Delete(&History{}).Error; err != nil {
		return log.Err("failed to delete history", err, "ownerID", ownerID)
	}

	return nil
}
