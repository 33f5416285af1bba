package favoritesController

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

type FavoritesController struct {
	favoriteRepo       repositories.FavoriteRepository
	audioRepo          repositories.AudioRepository
	transactionService *services.TransactionService
	db                 database.DB
}

// ToggleResult reports which way a toggle went
type ToggleResult struct {
	Status string `json:"status"`
}

const (
	StatusAdded   = "added"
	StatusRemoved = "removed"
)

type FavoritesControllerInterface interface {
	Toggle(ctx context.Context, user *User, audioID string) (*ToggleResult, error)
	IsFavorite(ctx context.Context, user *User, audioID string) (bool, error)
	List(ctx context.Context, user *User, page utils.Pagination) ([]AudioSummary, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) FavoritesControllerInterface {
	return &FavoritesController{
		favoriteRepo:       repos.Favorite,
		audioRepo:          repos.Audio,
		transactionService: services.Transaction,
		db:                 db,
	}
}

// Toggle flips the audio's membership in the user's favorite list. The list
// and the audio's likes mirror change together in one transaction.
func (c *FavoritesController) Toggle(
	ctx context.Context,
	user *User,
	audioID string,
) (*ToggleResult, error) {
	log := logger.NewWithContext(ctx, "favoritesController").Function("Toggle")

	id, err := uuid.Parse(audioID)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid audio id", "audioID", audioID)
	}

	var added bool
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		audio, err := c.audioRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return log.Error("failed to load audio", "error", err, "audioID", id)
		}
		if audio == nil {
			return log.ErrorWithType(ErrNotFound, "audio not found", "audioID", id)
		}

		favorite, err := c.favoriteRepo.GetByOwnerTx(ctx, tx, user.ID)
		if err != nil {
			return log.Error("failed to load favorite list", "error", err, "userID", user.ID)
		}

		if favorite == nil {
			favorite = &Favorite{OwnerID: user.ID}
			favorite.Add(id)
			audio.AddLike(user.ID)
			added = true

			if err := c.favoriteRepo.CreateTx(ctx, tx, favorite); err != nil {
				return log.Error("failed to create favorite list", "error", err, "userID", user.ID)
			}
			return c.audioRepo.UpdateTx(ctx, tx, audio)
		}

		if favorite.Contains(id) {
			favorite.Remove(id)
			audio.RemoveLike(user.ID)
			added = false
		} else {
			favorite.Add(id)
			audio.AddLike(user.ID)
			added = true
		}

		if err := c.favoriteRepo.UpdateTx(ctx, tx, favorite); err != nil {
			return log.Error("failed to update favorite list", "error", err, "userID", user.ID)
		}
		return c.audioRepo.UpdateTx(ctx, tx, audio)
	})
	if err != nil {
		return nil, err
	}

	status := StatusRemoved
	if added {
		status = StatusAdded
	}

	log.Info("Favorite toggled", "userID", user.ID, "audioID", id, "status", status)

	return &ToggleResult{Status: status}, nil
}

// IsFavorite reports membership without changing anything
func (c *FavoritesController) IsFavorite(
	ctx context.Context,
	user *User,
	audioID string,
) (bool, error) {
	log := logger.NewWithContext(ctx, "favoritesController").Function("IsFavorite")

	id, err := uuid.Parse(audioID)
	if err != nil {
		return false, log.ErrorWithType(ErrValidation, "invalid audio id", "audioID", audioID)
	}

	favorite, err := c.favoriteRepo.GetByOwner(ctx, user.ID)
	if err != nil {
		return false, log.Error("failed to load favorite list", "error", err, "userID", user.ID)
	}
	if favorite == nil {
		return false, nil
	}

	return favorite.Contains(id), nil
}

// List returns the requested page of the user's favorites as audio summaries,
// newest toggle last. Ids whose audio or uploader no longer exists are
// silently dropped.
func (c *FavoritesController) List(
	ctx context.Context,
	user *User,
	page utils.Pagination,
) ([]AudioSummary, error) {
	log := logger.NewWithContext(ctx, "favoritesController").Function("List")

	favorite, err := c.favoriteRepo.GetByOwner(ctx, user.ID)
	if err != nil {
		return nil, log.Error("failed to load favorite list", "error", err, "userID", user.ID)
	}
	if favorite == nil {
		return []AudioSummary{}, nil
	}

	ids := utils.SlicePage(favorite.Items, page)
	summaries, err := c.audioRepo.GetSummariesByIDs(ctx, ids)
	if err != nil {
		return nil, log.Error("failed to hydrate favorites", "error", err, "userID", user.ID)
	}

	return summaries, nil
}
