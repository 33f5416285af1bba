package repositories

import (
	"context"
	"errors"
	"time"

	"audora/internal/database"
	"audora/internal/logger"
	. "audora/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenRepository manages the single-use email verification and password
// reset tokens. Replace rotates the live token for an owner: any previous one
// is removed first.
type TokenRepository interface {
	ReplaceVerification(ctx context.Context, ownerID uuid.UUID, tokenHash string) error
	GetVerificationByOwner(ctx context.Context, ownerID uuid.UUID) (*EmailVerificationToken, error)
	DeleteVerificationByOwner(ctx context.Context, ownerID uuid.UUID) error

	ReplaceReset(ctx context.Context, ownerID uuid.UUID, tokenHash string) error
	GetResetByOwner(ctx context.Context, ownerID uuid.UUID) (*PasswordResetToken, error)
	DeleteResetByOwner(ctx context.Context, ownerID uuid.UUID) error

	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

type tokenRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTokenRepository(db database.DB) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: logger.New("tokenRepository"),
	}
}

func (r *tokenRepository) ReplaceVerification(
	ctx context.Context,
	ownerID uuid.UUID,
	tokenHash string,
) error {
	log := r.log.Function("ReplaceVerification")

	err := r.db.SQL.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("owner_id = ?", ownerID).
			Delete(&EmailVerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&EmailVerificationToken{
			OwnerID:   ownerID,
			TokenHash: tokenHash,
		}).Error
	})
	if err != nil {
		return log.Err("failed to replace verification token", err, "ownerID", ownerID)
	}

	return nil
}

func (r *tokenRepository) GetVerificationByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) (*EmailVerificationToken, error) {
	log := r.log.Function("GetVerificationByOwner")

	var token EmailVerificationToken
	if err := r.db.SQLWithContext(ctx).First(&token, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get verification token", err, "ownerID", ownerID)
	}

	return &token, nil
}

func (r *tokenRepository) DeleteVerificationByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) error {
	log := r.log.Function("DeleteVerificationByOwner")

	if err := r.db.SQLWithContext(ctx).Unscoped().
		Where("owner_id = ?", ownerID).
		Delete(&EmailVerificationToken{}).Error; err != nil {
		return log.Err("failed to delete verification token", err, "ownerID", ownerID)
	}

	return nil
}

func (r *tokenRepository) ReplaceReset(
	ctx context.Context,
	ownerID uuid.UUID,
	tokenHash string,
) error {
	log := r.log.Function("ReplaceReset")

	err := r.db.SQL.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("owner_id = ?", ownerID).
			Delete(&PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&PasswordResetToken{
			OwnerID:   ownerID,
			TokenHash: tokenHash,
		}).Error
	})
	if err != nil {
		return log.Err("failed to replace reset token", err, "ownerID", ownerID)
	}

	return nil
}

func (r *tokenRepository) GetResetByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) (*PasswordResetToken, error) {
	log := r.log.Function("GetResetByOwner")

	var token PasswordResetToken
	if err := r.db.SQLWithContext(ctx).First(&token, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get reset token", err, "ownerID", ownerID)
	}

	return &token, nil
}

func (r *tokenRepository) DeleteResetByOwner(ctx context.Context, ownerID uuid.UUID) error {
	log := r.log.Function("DeleteResetByOwner")

	if err := r.db.SQLWithContext(ctx).Unscoped().
		Where("owner_id = ?", ownerID).
		Delete(&PasswordResetToken{}).Error; err != nil {
		return log.Err("failed to delete reset token", err, "ownerID", ownerID)
	}

	return nil
}

// DeleteExpired removes verification and reset tokens created before
// olderThan and returns how many rows were dropped
func (r *tokenRepository) DeleteExpired(
	ctx context.Context,
	olderThan time.Time,
) (int64, error) {
	log := r.log.Function("DeleteExpired")

	var total int64

	result := r.db.SQLWithContext(ctx).Unscoped().
		Where("created_at < ?", olderThan).
		Delete(&EmailVerificationToken{})
	if result.Error != nil {
		return 0, log.Err("failed to delete expired verification tokens", result.Error)
	}
	total += result.RowsAffected

	result = r.db.SQLWithContext(ctx).Unscoped().
		Where("created_at < ?", olderThan).
		Delete(&PasswordResetToken{})
	if result.Error != nil {
		return total, log.Err("failed to delete expired reset tokens", result.Error)
	}
	total += result.RowsAffected

	return total, nil
}
