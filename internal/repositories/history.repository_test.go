package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"audora/internal/database"
	. "audora/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
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

	return database.DB{SQL: gormDB}, mock
}

// owner_id is unique, so removing a history must issue a real DELETE. A soft
// delete would leave the row in the index and break re-creation.
func TestDeleteByOwnerRemovesRowOutright(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHistoryRepository(db)

	ownerID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "histories" WHERE owner_id = $1`)).
		WithArgs(ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteThenRecreateSameOwner(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHistoryRepository(db)

	ownerID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "histories" WHERE owner_id = $1`)).
		WithArgs(ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "histories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))

	require.NoError(t, repo.DeleteByOwner(context.Background(), ownerID))

	fresh := &History{OwnerID: ownerID}
	fresh.Prepend(PlayEvent{
		ID:       uuid.New(),
		AudioID:  uuid.New(),
		Progress: 5,
		Date:     time.Now(),
	})

	require.NoError(t, repo.Create(context.Background(), fresh))
	assert.NoError(t, mock.ExpectationsWereMet())
}
