package profileController

import (
	"context"
	"testing"

	"audora/internal/database"
	. "audora/internal/models"
	"audora/internal/services"
	"audora/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*User
	txReads int
}

func newFakeUserRepo(users ...*User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	f.txReads++
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error) {
	found := make([]*User, 0, len(ids))
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			found = append(found, user)
		}
	}
	return found, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateTx(ctx context.Context, tx *gorm.DB, user *User) error {
	f.users[user.ID] = user
	return nil
}

func namedUser(name string) *User {
	user := &User{Name: name}
	user.ID = uuid.New()
	return user
}

func newTxService(t *testing.T) (*services.TransactionService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	return services.NewTransactionService(database.DB{SQL: gormDB}), mock
}

func TestToggleFollow(t *testing.T) {
	profile := namedUser("Asha")
	user := namedUser("Noor")

	repo := newFakeUserRepo(profile)
	txService, mock := newTxService(t)
	controller := &ProfileController{userRepo: repo, transactionService: txService}

	t.Run("follow adds both sides", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit()

		status, err := controller.ToggleFollow(context.Background(), user, profile.ID.String())
		require.NoError(t, err)

		assert.Equal(t, "added", status.Status)
		assert.True(t, containsID(user.Followings, profile.ID))
		assert.True(t, containsID(repo.users[profile.ID].Followers, user.ID))
	})

	t.Run("second toggle removes both sides", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit()

		status, err := controller.ToggleFollow(context.Background(), user, profile.ID.String())
		require.NoError(t, err)

		assert.Equal(t, "removed", status.Status)
		assert.False(t, containsID(user.Followings, profile.ID))
		assert.False(t, containsID(repo.users[profile.ID].Followers, user.ID))
	})

	t.Run("profile is read through the transaction", func(t *testing.T) {
		assert.Equal(t, 2, repo.txReads)
	})

	t.Run("cannot follow yourself", func(t *testing.T) {
		_, err := controller.ToggleFollow(context.Background(), user, user.ID.String())
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing profile rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := controller.ToggleFollow(context.Background(), user, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublicProfile(t *testing.T) {
	profile := namedUser("Asha")
	profile.Followers = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	controller := &ProfileController{userRepo: newFakeUserRepo(profile)}

	result, err := controller.GetPublicProfile(context.Background(), profile.ID.String())
	require.NoError(t, err)

	assert.Equal(t, profile.ID.String(), result.ID)
	assert.Equal(t, "Asha", result.Name)
	assert.Equal(t, 3, result.Followers)

	_, err = controller.GetPublicProfile(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = controller.GetPublicProfile(context.Background(), "bad-id")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIsFollowing(t *testing.T) {
	followed := uuid.New()

	user := namedUser("Asha")
	user.Followings = []uuid.UUID{followed}

	controller := &ProfileController{userRepo: newFakeUserRepo()}

	following, err := controller.IsFollowing(context.Background(), user, followed.String())
	require.NoError(t, err)
	assert.True(t, following)

	following, err = controller.IsFollowing(context.Background(), user, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, following)

	_, err = controller.IsFollowing(context.Background(), user, "bad-id")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFollowersKeepsOrderAndDropsMissing(t *testing.T) {
	first := namedUser("First")
	second := namedUser("Second")
	gone := uuid.New()

	user := namedUser("Asha")
	user.Followers = []uuid.UUID{second.ID, gone, first.ID}

	controller := &ProfileController{userRepo: newFakeUserRepo(first, second)}

	entries, err := controller.Followers(context.Background(), user, utils.Pagination{Limit: 20})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "Second", entries[0].Name)
	assert.Equal(t, "First", entries[1].Name)
}

func TestFollowingsPaginates(t *testing.T) {
	followed := make([]*User, 5)
	ids := make([]uuid.UUID, 5)
	for i := range followed {
		followed[i] = namedUser("User")
		ids[i] = followed[i].ID
	}

	user := namedUser("Asha")
	user.Followings = ids

	controller := &ProfileController{userRepo: newFakeUserRepo(followed...)}

	entries, err := controller.Followings(
		context.Background(),
		user,
		utils.Pagination{PageNo: 1, Limit: 2},
	)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, ids[2].String(), entries[0].ID)
	assert.Equal(t, ids[3].String(), entries[1].ID)
}

func TestContainsAndRemoveID(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	assert.True(t, containsID(ids, ids[1]))
	assert.False(t, containsID(ids, uuid.New()))

	kept := removeID(ids, ids[1])
	assert.Equal(t, []uuid.UUID{ids[0], ids[2]}, kept)
}
