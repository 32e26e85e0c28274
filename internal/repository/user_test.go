package repository

import (
	"context"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name"}).
						AddRow(1, "sam", "Sam Rivers"))
			},
			expectedError: false,
		},
		{
			name:   "Not Found",
			userID: 404,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
					WithArgs(404, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			user, err := repo.GetByID(ctx, tt.userID)
			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.userID, user.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs("anonymous", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(99, "anonymous"))

	user, err := repo.GetByUsername(ctx, "anonymous")
	assert.NoError(t, err)
	assert.Equal(t, uint(99), user.ID)
	assert.True(t, user.IsAnonymous())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetOrCreateAnonymous(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing row returned", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(models.AnonymousUsername, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name"}).
				AddRow(99, models.AnonymousUsername, "Anonymous"))

		user, err := repo.GetOrCreateAnonymous(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint(99), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Created on first use", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(models.AnonymousUsername, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(99))
		mock.ExpectCommit()

		user, err := repo.GetOrCreateAnonymous(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.AnonymousUsername, user.Username)
		assert.Equal(t, models.AnonymousEmail, user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lost insert race re-reads winner row", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(models.AnonymousUsername, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		// ON CONFLICT DO NOTHING returns no rows when a concurrent insert won
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectCommit()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(models.AnonymousUsername, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
				AddRow(99, models.AnonymousUsername))

		user, err := repo.GetOrCreateAnonymous(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint(99), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
