package repository

import (
	"context"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository owns the like and view rows for blog posts. Both tables
// carry a composite unique index on (post_slug, user_id); inserts go through
// ON CONFLICT DO NOTHING so a losing concurrent writer surfaces as "not
// inserted" instead of a constraint error.
type EngagementRepository interface {
	GetLike(ctx context.Context, postSlug string, userID uint) (*models.Like, error)
	InsertLike(ctx context.Context, like *models.Like) (bool, error)
	DeleteLike(ctx context.Context, postSlug string, userID uint) error
	CountLikes(ctx context.Context, postSlug string) (int64, error)
	IsLiked(ctx context.Context, postSlug string, userID uint) (bool, error)

	GetView(ctx context.Context, postSlug string, userID uint) (*models.View, error)
	InsertView(ctx context.Context, view *models.View) (bool, error)
	TouchView(ctx context.Context, id uint, at time.Time) error
	CountViews(ctx context.Context, postSlug string) (int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) GetLike(ctx context.Context, postSlug string, userID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).Where("post_slug = ? AND user_id = ?", postSlug, userID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// InsertLike creates a like row. It returns false when the (post_slug,
// user_id) pair already exists, which callers read as "a concurrent toggle won
// the race".
func (r *engagementRepository) InsertLike(ctx context.Context, like *models.Like) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_slug"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *engagementRepository) DeleteLike(ctx context.Context, postSlug string, userID uint) error {
	return r.db.WithContext(ctx).Where("post_slug = ? AND user_id = ?", postSlug, userID).Delete(&models.Like{}).Error
}

func (r *engagementRepository) CountLikes(ctx context.Context, postSlug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_slug = ?", postSlug).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) IsLiked(ctx context.Context, postSlug string, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_slug = ? AND user_id = ?", postSlug, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) GetView(ctx context.Context, postSlug string, userID uint) (*models.View, error) {
	var view models.View
	err := r.db.WithContext(ctx).Where("post_slug = ? AND user_id = ?", postSlug, userID).First(&view).Error
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// InsertView creates the single view row for a (post_slug, user_id) pair.
// Returns false when the pair already exists.
func (r *engagementRepository) InsertView(ctx context.Context, view *models.View) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_slug"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(view)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// TouchView advances last_view_at. The extra predicate keeps the timestamp
// monotonic under concurrent renewals.
func (r *engagementRepository) TouchView(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.View{}).
		Where("id = ? AND last_view_at < ?", id, at).
		Update("last_view_at", at).Error
}

func (r *engagementRepository) CountViews(ctx context.Context, postSlug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.View{}).
		Where("post_slug = ?", postSlug).
		Count(&count).Error
	return count, err
}
