package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seed command and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	// uuid suffix keeps usernames unique across repeated seeding runs
	suffix := uuid.NewString()[:8]
	user := &models.User{
		Username:    gofakeit.Username() + "-" + suffix,
		Email:       fmt.Sprintf("%s-%s", suffix, gofakeit.Email()),
		Password:    string(hashedPassword),
		DisplayName: gofakeit.Name(),
		Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateComment constructs and persists a sample comment by the given user.
func (f *Factory) CreateComment(user *models.User, postSlug string, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Paragraph(1, 2, 8, "\n"),
		PostSlug: postSlug,
		UserID:   user.ID,
	}

	// realistic created_at spread over the last month
	daysBack := f.r.Intn(30)
	hoursBack := f.r.Intn(24)
	comment.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records a like by the user on the given post. Duplicate pairs
// are ignored so the factory can be called without tracking prior state.
func (f *Factory) CreateLike(user *models.User, postSlug string) error {
	like := &models.Like{PostSlug: postSlug, UserID: user.ID}
	return f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_slug"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(like).Error
}

// CreateView records a view by the user on the given post, backdated so
// seeded data looks like organic traffic.
func (f *Factory) CreateView(user *models.User, postSlug string) error {
	lastViewAt := time.Now().Add(-time.Duration(f.r.Intn(72)) * time.Hour)
	view := &models.View{PostSlug: postSlug, UserID: user.ID, LastViewAt: lastViewAt}
	return f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_slug"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(view).Error
}
