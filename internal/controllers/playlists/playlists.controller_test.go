package playlistsController

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

type fakePlaylistRepo struct {
	playlists map[uuid.UUID]*Playlist
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: make(map[uuid.UUID]*Playlist)}
}

func (f *fakePlaylistRepo) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*Playlist, error) {
	playlist, ok := f.playlists[id]
	if !ok || playlist.OwnerID != ownerID {
		return nil, nil
	}
	return playlist, nil
}

func (f *fakePlaylistRepo) ListAutoByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page utils.Pagination,
) ([]*Playlist, error) {
	return nil, nil
}

func (f *fakePlaylistRepo) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page utils.Pagination,
) ([]*Playlist, error) {
	listed := make([]*Playlist, 0, len(f.playlists))
	for _, playlist := range f.playlists {
		if playlist.OwnerID == ownerID && playlist.Visibility != VisibilityAuto {
			listed = append(listed, playlist)
		}
	}
	return listed, nil
}

func (f *fakePlaylistRepo) ListPublicByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page utils.Pagination,
) ([]*Playlist, error) {
	return nil, nil
}

func (f *fakePlaylistRepo) Create(ctx context.Context, playlist *Playlist) error {
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	f.playlists[playlist.ID] = playlist
	return nil
}

func (f *fakePlaylistRepo) Update(ctx context.Context, playlist *Playlist) error {
	f.playlists[playlist.ID] = playlist
	return nil
}

func (f *fakePlaylistRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	playlist, ok := f.playlists[id]
	if !ok || playlist.OwnerID != ownerID {
		return false, nil
	}
	delete(f.playlists, id)
	return true, nil
}

type fakeAudioCatalog struct {
	audios map[uuid.UUID]*Audio
}

func (f *fakeAudioCatalog) GetByID(ctx context.Context, id uuid.UUID) (*Audio, error) {
	return f.audios[id], nil
}

func (f *fakeAudioCatalog) GetByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Audio, error) {
	return f.audios[id], nil
}

func (f *fakeAudioCatalog) GetSummariesByIDs(
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

func testAudio() *Audio {
	audio := &Audio{Title: "Episode", Category: CategoryMusic, FileURL: "https://cdn/file.mp3"}
	audio.ID = uuid.New()
	return audio
}

func testUser() *User {
	user := &User{}
	user.ID = uuid.New()
	return user
}

func newTestController(
	playlistRepo *fakePlaylistRepo,
	catalog *fakeAudioCatalog,
) *PlaylistsController {
	if catalog == nil {
		catalog = &fakeAudioCatalog{}
	}
	return &PlaylistsController{playlistRepo: playlistRepo, audioRepo: catalog}
}

func TestValidateTitleAndVisibility(t *testing.T) {
	testCases := []struct {
		name       string
		title      string
		visibility Visibility
		wantError  bool
	}{
		{"valid public", "Roadtrip", VisibilityPublic, false},
		{"valid private", "Roadtrip", VisibilityPrivate, false},
		{"empty title", "", VisibilityPublic, true},
		{"title too long", strings.Repeat("x", MaxTitleLength+1), VisibilityPublic, true},
		{"auto visibility rejected", "Roadtrip", VisibilityAuto, true},
		{"unknown visibility", "Roadtrip", Visibility("shared"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTitleAndVisibility(tc.title, tc.visibility)
			if tc.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreatePlaylist(t *testing.T) {
	t.Run("without seed audio", func(t *testing.T) {
		repo := newFakePlaylistRepo()
		controller := newTestController(repo, nil)

		summary, err := controller.Create(context.Background(), testUser(), &CreatePlaylistRequest{
			Title:      "Roadtrip",
			Visibility: VisibilityPublic,
		})
		require.NoError(t, err)

		assert.Equal(t, "Roadtrip", summary.Title)
		assert.Equal(t, VisibilityPublic, summary.Visibility)
		assert.NotEmpty(t, summary.ID)
		assert.Len(t, repo.playlists, 1)
	})

	t.Run("seed audio must exist", func(t *testing.T) {
		controller := newTestController(newFakePlaylistRepo(), nil)

		_, err := controller.Create(context.Background(), testUser(), &CreatePlaylistRequest{
			Title:      "Roadtrip",
			Visibility: VisibilityPublic,
			AudioID:    uuid.NewString(),
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("seed audio is stored", func(t *testing.T) {
		audio := testAudio()
		repo := newFakePlaylistRepo()
		controller := newTestController(repo, &fakeAudioCatalog{
			audios: map[uuid.UUID]*Audio{audio.ID: audio},
		})

		summary, err := controller.Create(context.Background(), testUser(), &CreatePlaylistRequest{
			Title:      "Roadtrip",
			Visibility: VisibilityPrivate,
			AudioID:    audio.ID.String(),
		})
		require.NoError(t, err)

		playlistID, err := uuid.Parse(summary.ID)
		require.NoError(t, err)
		assert.True(t, repo.playlists[playlistID].Contains(audio.ID))
	})
}

func TestUpdatePlaylist(t *testing.T) {
	user := testUser()
	audio := testAudio()

	playlist := &Playlist{OwnerID: user.ID, Title: "Old", Visibility: VisibilityPrivate}
	playlist.ID = uuid.New()

	repo := newFakePlaylistRepo()
	repo.playlists[playlist.ID] = playlist

	controller := newTestController(repo, &fakeAudioCatalog{
		audios: map[uuid.UUID]*Audio{audio.ID: audio},
	})

	summary, err := controller.Update(context.Background(), user, &UpdatePlaylistRequest{
		PlaylistID: playlist.ID.String(),
		Title:      "New",
		Visibility: VisibilityPublic,
		AudioID:    audio.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "New", summary.Title)
	assert.Equal(t, VisibilityPublic, summary.Visibility)
	assert.True(t, repo.playlists[playlist.ID].Contains(audio.ID))
}

func TestUpdatePlaylistNotOwned(t *testing.T) {
	other := &Playlist{OwnerID: uuid.New(), Title: "Theirs", Visibility: VisibilityPublic}
	other.ID = uuid.New()

	repo := newFakePlaylistRepo()
	repo.playlists[other.ID] = other

	controller := newTestController(repo, nil)

	_, err := controller.Update(context.Background(), testUser(), &UpdatePlaylistRequest{
		PlaylistID: other.ID.String(),
		Title:      "Mine now",
		Visibility: VisibilityPublic,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemovePlaylist(t *testing.T) {
	t.Run("all deletes the playlist", func(t *testing.T) {
		user := testUser()
		playlist := &Playlist{OwnerID: user.ID, Title: "Roadtrip", Visibility: VisibilityPublic}
		playlist.ID = uuid.New()

		repo := newFakePlaylistRepo()
		repo.playlists[playlist.ID] = playlist

		controller := newTestController(repo, nil)

		err := controller.Remove(context.Background(), user, &RemovePlaylistRequest{
			PlaylistID: playlist.ID.String(),
			All:        true,
		})
		require.NoError(t, err)
		assert.Empty(t, repo.playlists)
	})

	t.Run("deleting a missing playlist fails", func(t *testing.T) {
		controller := newTestController(newFakePlaylistRepo(), nil)

		err := controller.Remove(context.Background(), testUser(), &RemovePlaylistRequest{
			PlaylistID: uuid.NewString(),
			All:        true,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("pulls one audio", func(t *testing.T) {
		user := testUser()
		audioID := uuid.New()

		playlist := &Playlist{OwnerID: user.ID, Title: "Roadtrip", Visibility: VisibilityPublic}
		playlist.ID = uuid.New()
		playlist.Add(audioID)

		repo := newFakePlaylistRepo()
		repo.playlists[playlist.ID] = playlist

		controller := newTestController(repo, nil)

		err := controller.Remove(context.Background(), user, &RemovePlaylistRequest{
			PlaylistID: playlist.ID.String(),
			AudioID:    audioID.String(),
		})
		require.NoError(t, err)
		assert.False(t, repo.playlists[playlist.ID].Contains(audioID))
	})
}

func TestGetAudios(t *testing.T) {
	user := testUser()
	audio := testAudio()

	playlist := &Playlist{OwnerID: user.ID, Title: "Roadtrip", Visibility: VisibilityPublic}
	playlist.ID = uuid.New()
	playlist.Add(audio.ID)

	repo := newFakePlaylistRepo()
	repo.playlists[playlist.ID] = playlist

	controller := newTestController(repo, &fakeAudioCatalog{
		audios: map[uuid.UUID]*Audio{audio.ID: audio},
	})

	list, err := controller.GetAudios(context.Background(), user, playlist.ID.String())
	require.NoError(t, err)

	require.NotNil(t, list)
	assert.Equal(t, "Roadtrip", list.Title)
	require.Len(t, list.Audios, 1)
	assert.Equal(t, audio.ID.String(), list.Audios[0].ID)
}

func TestGetAudiosMissingPlaylist(t *testing.T) {
	controller := newTestController(newFakePlaylistRepo(), nil)

	list, err := controller.GetAudios(context.Background(), testUser(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, list)
}
