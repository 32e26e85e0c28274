package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEngagementRepository_InsertLike(t *testing.T) {
	ctx := context.Background()

	t.Run("Row inserted", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewEngagementRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		inserted, err := repo.InsertLike(ctx, &models.Like{PostSlug: "hello-world", UserID: 7})
		assert.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflict suppressed", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewEngagementRepository(db)

		// ON CONFLICT DO NOTHING returns no rows when the pair exists
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectCommit()

		inserted, err := repo.InsertLike(ctx, &models.Like{PostSlug: "hello-world", UserID: 7})
		assert.NoError(t, err)
		assert.False(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEngagementRepository_DeleteLike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	// Likes are hard-deleted so the pair can like again later
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE post_slug = $1 AND user_id = $2`)).
		WithArgs("hello-world", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteLike(ctx, "hello-world", 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEngagementRepository_CountLikes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE post_slug = $1`)).
		WithArgs("hello-world").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountLikes(ctx, "hello-world")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEngagementRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE post_slug = $1 AND user_id = $2`)).
		WithArgs("hello-world", 7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, err := repo.IsLiked(ctx, "hello-world", 7)
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEngagementRepository_InsertView(t *testing.T) {
	ctx := context.Background()

	t.Run("Row inserted", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewEngagementRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "views"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		inserted, err := repo.InsertView(ctx, &models.View{
			PostSlug:   "hello-world",
			UserID:     7,
			LastViewAt: time.Now().UTC(),
		})
		assert.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflict suppressed", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewEngagementRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "views"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectCommit()

		inserted, err := repo.InsertView(ctx, &models.View{
			PostSlug:   "hello-world",
			UserID:     7,
			LastViewAt: time.Now().UTC(),
		})
		assert.NoError(t, err)
		assert.False(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEngagementRepository_TouchView(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "views" SET "last_view_at"=$1 WHERE id = $2 AND last_view_at < $3`)).
		WithArgs(now, 3, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.TouchView(ctx, 3, now)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEngagementRepository_GetView(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()
	lastViewAt := time.Now().UTC().Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "views" WHERE post_slug = $1 AND user_id = $2`)).
		WithArgs("hello-world", 7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_slug", "user_id", "last_view_at"}).
			AddRow(3, "hello-world", 7, lastViewAt))

	view, err := repo.GetView(ctx, "hello-world", 7)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), view.ID)
	assert.WithinDuration(t, lastViewAt, view.LastViewAt, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEngagementRepository_CountViews(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "views" WHERE post_slug = $1`)).
		WithArgs("hello-world").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))

	count, err := repo.CountViews(ctx, "hello-world")
	assert.NoError(t, err)
	assert.Equal(t, int64(40), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
