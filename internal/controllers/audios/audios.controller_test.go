package audiosController

import (
	"context"
	"strings"
	"testing"

	. "audora/internal/models"
	"audora/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAudioRepo struct {
	audios map[uuid.UUID]*Audio
}

func newFakeAudioRepo(audios ...*Audio) *fakeAudioRepo {
	repo := &fakeAudioRepo{audios: make(map[uuid.UUID]*Audio)}
	for _, audio := range audios {
		repo.audios[audio.ID] = audio
	}
	return repo
}

func (f *fakeAudioRepo) GetByID(ctx context.Context, id uuid.UUID) (*Audio, error) {
	return f.audios[id], nil
}

func (f *fakeAudioRepo) GetByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Audio, error) {
	return f.audios[id], nil
}

func (f *fakeAudioRepo) GetSummariesByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]AudioSummary, error) {
	summaries := make([]AudioSummary, 0, len(ids))
	for _, id := range ids {
		audio, ok := f.audios[id]
		if !ok {
			continue
		}
		summaries = append(summaries, audio.ToSummary("owner"))
	}
	return summaries, nil
}

func (f *fakeAudioRepo) GetByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page utils.Pagination,
) ([]*Audio, error) {
	return nil, nil
}

func (f *fakeAudioRepo) GetLatest(ctx context.Context, page utils.Pagination) ([]*Audio, error) {
	latest := make([]*Audio, 0, len(f.audios))
	for _, audio := range f.audios {
		latest = append(latest, audio)
	}
	return latest, nil
}

func (f *fakeAudioRepo) Create(ctx context.Context, audio *Audio) error {
	if audio.ID == uuid.Nil {
		audio.ID = uuid.New()
	}
	f.audios[audio.ID] = audio
	return nil
}

func (f *fakeAudioRepo) Update(ctx context.Context, audio *Audio) error {
	f.audios[audio.ID] = audio
	return nil
}

func (f *fakeAudioRepo) UpdateTx(ctx context.Context, tx *gorm.DB, audio *Audio) error {
	f.audios[audio.ID] = audio
	return nil
}

func testUser() *User {
	user := &User{Name: "Asha"}
	user.ID = uuid.New()
	return user
}

func TestCreateValidation(t *testing.T) {
	controller := &AudiosController{audioRepo: newFakeAudioRepo()}
	user := testUser()

	testCases := []struct {
		name    string
		request CreateAudioRequest
	}{
		{
			name:    "missing title",
			request: CreateAudioRequest{Category: CategoryMusic, File: &FileUpload{}},
		},
		{
			name: "about too long",
			request: CreateAudioRequest{
				Title:    "Episode",
				About:    strings.Repeat("x", MaxAboutLength+1),
				Category: CategoryMusic,
				File:     &FileUpload{},
			},
		},
		{
			name: "unknown category",
			request: CreateAudioRequest{
				Title:    "Episode",
				Category: Category("Podcasts"),
				File:     &FileUpload{},
			},
		},
		{
			name:    "missing file",
			request: CreateAudioRequest{Title: "Episode", Category: CategoryMusic},
		},
		{
			name: "uploads disabled",
			request: CreateAudioRequest{
				Title:    "Episode",
				Category: CategoryMusic,
				File:     &FileUpload{Filename: "ep.mp3"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := controller.Create(context.Background(), user, &tc.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	owner := testUser()

	audio := &Audio{Title: "Episode", OwnerID: owner.ID, Category: CategoryMusic}
	audio.ID = uuid.New()

	repo := newFakeAudioRepo(audio)
	controller := &AudiosController{audioRepo: repo}

	t.Run("owner can rename", func(t *testing.T) {
		summary, err := controller.Update(context.Background(), owner, &UpdateAudioRequest{
			AudioID: audio.ID.String(),
			Title:   "Episode (remastered)",
		})
		require.NoError(t, err)
		assert.Equal(t, "Episode (remastered)", summary.Title)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := controller.Update(context.Background(), testUser(), &UpdateAudioRequest{
			AudioID: audio.ID.String(),
			Title:   "Hijacked",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid id rejected", func(t *testing.T) {
		_, err := controller.Update(context.Background(), owner, &UpdateAudioRequest{
			AudioID: "bad-id",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
