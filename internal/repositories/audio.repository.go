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

type AudioRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Audio, error)
	GetByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Audio, error)
	GetSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]AudioSummary, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID, page utils.Pagination) ([]*Audio, error)
	GetLatest(ctx context.Context, page utils.Pagination) ([]*Audio, error)
	Create(ctx context.Context, audio *Audio) error
	Update(ctx context.Context, audio *Audio) error
	UpdateTx(ctx context.Context, tx *gorm.DB, audio *Audio) error
}

type audioRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAudioRepository(db database.DB) AudioRepository {
	return &audioRepository{
		db:  db,
		log: logger.New("audioRepository"),
	}
}

func (r *audioRepository) GetByID(ctx context.Context, id uuid.UUID) (*Audio, error) {
	return r.GetByIDTx(ctx, r.db.SQL, id)
}

// GetByIDTx returns nil without error when the audio does not exist, so
// callers can decide whether a missing id is fatal
func (r *audioRepository) GetByIDTx(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*Audio, error) {
	log := r.log.Function("GetByIDTx")

	var audio Audio
	if err := tx.WithContext(ctx).First(&audio, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get audio by id", err, "audioID", id)
	}

	return &audio, nil
}

// audioOwnerRow carries an audio joined with its uploader's name
type audioOwnerRow struct {
	Audio
	OwnerName string
}

// GetSummariesByIDs hydrates audio ids into listing summaries with a single
// join against users. Ids without a surviving audio or owner are dropped; the
// result preserves the order of ids.
func (r *audioRepository) GetSummariesByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]AudioSummary, error) {
	log := r.log.Function("GetSummariesByIDs")

	if len(ids) == 0 {
		return []AudioSummary{}, nil
	}

	var rows []audioOwnerRow
	if err := r.db.SQLWithContext(ctx).
		Table("audios").
		Select("audios.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = audios.owner_id AND users.deleted_at IS NULL").
		Where("audios.id IN ? AND audios.deleted_at IS NULL", ids).
		Scan(&rows).Error; err != nil {
		return nil, log.Err("failed to get audio summaries", err, "count", len(ids))
	}

	byID := make(map[uuid.UUID]audioOwnerRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	summaries := make([]AudioSummary, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			summaries = append(summaries, row.ToSummary(row.OwnerName))
		}
	}

	return summaries, nil
}

func (r *audioRepository) GetByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page utils.Pagination,
) ([]*Audio, error) {
	log := r.log.Function("GetByOwner")

	var audios []*Audio
	if err := r.db.SQLWithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&audios).Error; err != nil {
		return nil, log.Err("failed to get audios by owner", err, "ownerID", ownerID)
	}

	return audios, nil
}

func (r *audioRepository) GetLatest(
	ctx context.Context,
	page utils.Pagination,
) ([]*Audio, error) {
	log := r.log.Function("GetLatest")

	var audios []*Audio
	if err := r.db.SQLWithContext(ctx).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&audios).Error; err != nil {
		return nil, log.Err("failed to get latest audios", err)
	}

	return audios, nil
}

func (r *audioRepository) Create(ctx context.Context, audio *Audio) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(audio).Error; err != nil {
		return log.Err("failed to create audio", err, "title", audio.Title)
	}

	return nil
}

func (r *audioRepository) Update(ctx context.Context, audio *Audio) error {
	return r.UpdateTx(ctx, r.db.SQL, audio)
}

func (r *audioRepository) UpdateTx(ctx context.Context, tx *gorm.DB, audio *Audio) error {
	log := r.log.Function("UpdateTx")

	if err := tx.WithContext(ctx).Save(audio).Error; err != nil {
		return log.Err("failed to update audio", err, "audioID", audio.ID)
	}

	return nil
}
