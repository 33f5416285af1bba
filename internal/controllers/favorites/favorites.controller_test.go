package favoritesController

import (
	"context"
	"testing"

	. "audora/internal/models"
	"audora/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFavoriteRepo struct {
	favorite *Favorite
}

func (f *fakeFavoriteRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Favorite, error) {
	return f.favorite, nil
}

func (f *fakeFavoriteRepo) GetByOwnerTx(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) (*Favorite, error) {
	return f.favorite, nil
}

func (f *fakeFavoriteRepo) CreateTx(ctx context.Context, tx *gorm.DB, favorite *Favorite) error {
	f.favorite = favorite
	return nil
}

func (f *fakeFavoriteRepo) UpdateTx(ctx context.Context, tx *gorm.DB, favorite *Favorite) error {
	f.favorite = favorite
	return nil
}

type fakeAudioCatalog struct {
	titles map[uuid.UUID]string
}

func (f *fakeAudioCatalog) GetSummariesByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]AudioSummary, error) {
	summaries := make([]AudioSummary, 0, len(ids))
	for _, id := range ids {
		title, ok := f.titles[id]
		if !ok {
			continue
		}
		summaries = append(summaries, AudioSummary{ID: id.String(), Title: title})
	}
	return summaries, nil
}

func (f *fakeAudioCatalog) GetByID(ctx context.Context, id uuid.UUID) (*Audio, error) {
	return nil, nil
}

func (f *fakeAudioCatalog) GetByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Audio, error) {
	return nil, nil
}

func (f *fakeAudioCatalog) GetByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page utils.Pagination,
) ([]*Audio, error) {
	return nil, nil
}

func (f *fakeAudioCatalog) GetLatest(ctx context.Context, page utils.Pagination) ([]*Audio, error) {
	return nil, nil
}

func (f *fakeAudioCatalog) Create(ctx context.Context, audio *Audio) error { return nil }

func (f *fakeAudioCatalog) Update(ctx context.Context, audio *Audio) error { return nil }

func (f *fakeAudioCatalog) UpdateTx(ctx context.Context, tx *gorm.DB, audio *Audio) error {
	return nil
}

func testUser() *User {
	user := &User{}
	user.ID = uuid.New()
	return user
}

func TestToggleRejectsInvalidID(t *testing.T) {
	controller := &FavoritesController{
		favoriteRepo: &fakeFavoriteRepo{},
		audioRepo:    &fakeAudioCatalog{},
	}

	_, err := controller.Toggle(context.Background(), testUser(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIsFavorite(t *testing.T) {
	favorited := uuid.New()
	other := uuid.New()

	controller := &FavoritesController{
		favoriteRepo: &fakeFavoriteRepo{
			favorite: &Favorite{Items: []uuid.UUID{favorited}},
		},
		audioRepo: &fakeAudioCatalog{},
	}

	result, err := controller.IsFavorite(context.Background(), testUser(), favorited.String())
	require.NoError(t, err)
	assert.True(t, result)

	result, err = controller.IsFavorite(context.Background(), testUser(), other.String())
	require.NoError(t, err)
	assert.False(t, result)

	_, err = controller.IsFavorite(context.Background(), testUser(), "bad")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIsFavoriteWithoutList(t *testing.T) {
	controller := &FavoritesController{
		favoriteRepo: &fakeFavoriteRepo{},
		audioRepo:    &fakeAudioCatalog{},
	}

	result, err := controller.IsFavorite(context.Background(), testUser(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, result)
}

func TestListPagesAndDropsMissing(t *testing.T) {
	ids := make([]uuid.UUID, 5)
	titles := make(map[uuid.UUID]string)
	for i := range ids {
		ids[i] = uuid.New()
		if i != 2 {
			titles[ids[i]] = "Episode"
		}
	}

	controller := &FavoritesController{
		favoriteRepo: &fakeFavoriteRepo{favorite: &Favorite{Items: ids}},
		audioRepo:    &fakeAudioCatalog{titles: titles},
	}

	summaries, err := controller.List(context.Background(), testUser(), utils.Pagination{Limit: 3})
	require.NoError(t, err)

	// the page holds ids[0..2]; ids[2] no longer resolves
	require.Len(t, summaries, 2)
	assert.Equal(t, ids[0].String(), summaries[0].ID)
	assert.Equal(t, ids[1].String(), summaries[1].ID)
}

func TestListWithoutListIsEmpty(t *testing.T) {
	controller := &FavoritesController{
		favoriteRepo: &fakeFavoriteRepo{},
		audioRepo:    &fakeAudioCatalog{},
	}

	summaries, err := controller.List(context.Background(), testUser(), utils.Pagination{Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
