// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines interface for user operations
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	GetOrCreateAnonymous(ctx context.Context) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetOrCreateAnonymous returns the shared anonymous placeholder user, creating
// it on first use. The unique constraint on username is the race guard: a
// losing concurrent insert is a no-op and both callers read back the same row.
func (r *userRepository) GetOrCreateAnonymous(ctx context.Context) (*models.User, error) {
	user, err := r.GetByUsername(ctx, models.AnonymousUsername)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	anon := &models.User{
		Username:    models.AnonymousUsername,
		Email:       models.AnonymousEmail,
		Password:    "",
		DisplayName: "Anonymous",
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(anon)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return anon, nil
	}
	// Lost the race; the row exists now.
	return r.GetByUsername(ctx, models.AnonymousUsername)
}
