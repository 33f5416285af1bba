package repositories

import (
	"context"
	"errors"

	"audora/internal/constants"
	"audora/internal/database"
	"audora/internal/logger"
	. "audora/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	UpdateTx(ctx context.Context, tx *gorm.DB, user *User) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if found := r.getCacheByID(ctx, id, &user); found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get user by id", err, "userID", id)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

// GetByIDTx reads the user through the caller's transaction, bypassing the
// cache so concurrent writers see committed state only
func (r *userRepository) GetByIDTx(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*User, error) {
	log := r.log.Function("GetByIDTx")

	var user User
	if err := tx.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get user by id", err, "userID", id)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get user by email", err, "email", email)
	}

	return &user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error) {
	log := r.log.Function("GetByIDs")

	if len(ids) == 0 {
		return []*User{}, nil
	}

	var users []*User
	if err := r.db.SQLWithContext(ctx).Find(&users, "id IN ?", ids).Error; err != nil {
		return nil, log.Err("failed to get users by ids", err, "count", len(ids))
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "email", user.Email)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	return r.UpdateTx(ctx, r.db.SQL, user)
}

// UpdateTx saves the user inside the caller's transaction and clears the
// user's cache entry
func (r *userRepository) UpdateTx(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("UpdateTx")

	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	if err := r.clearUserCache(ctx, user.ID); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) getCacheByID(ctx context.Context, userID uuid.UUID, user *User) bool {
	found, err := database.NewCacheBuilder(r.db.Cache.User, userID).
		WithHash(constants.UserCachePrefix).
		WithContext(ctx).
		Get(user)
	if err != nil {
		r.log.Function("getCacheByID").
			Warn("failed to get user from cache", "userID", userID, "error", err)
		return false
	}
	return found
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	if err := database.NewCacheBuilder(r.db.Cache.User, user.ID).
		WithHash(constants.UserCachePrefix).
		WithStruct(user).
		WithTTL(constants.UserCacheExpiry).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addUserToCache").
			Err("failed to add user to cache", err, "userID", user.ID)
	}
	return nil
}

func (r *userRepository) clearUserCache(ctx context.Context, userID uuid.UUID) error {
	if err := database.NewCacheBuilder(r.db.Cache.User, userID).
		WithHash(constants.UserCachePrefix).
		WithContext(ctx).
		Delete(); err != nil {
		return r.log.Function("clearUserCache").
			Err("failed to clear user cache", err, "userID", userID)
	}
	return nil
}
