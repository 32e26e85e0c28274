// Package seed provides helpers to create demo and test data for the
// engagement database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options controls how much demo data is created.
type Options struct {
	NumUsers        int
	CommentsPerPost int
	ShouldClean     bool
	// PostSlugs are the CMS slugs to attach engagement to. Articles live in
	// the headless CMS, so seeding only fabricates engagement rows.
	PostSlugs []string
}

// DefaultOptions returns a small but lively data set.
func DefaultOptions() Options {
	return Options{
		NumUsers:        12,
		CommentsPerPost: 5,
		PostSlugs: []string{
			"hello-world",
			"building-a-blog-with-a-headless-cms",
			"comments-likes-and-views",
			"shipping-fast-and-breaking-nothing",
		},
	}
}

// Seed populates the database with demo users and engagement data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users across %d posts...", opts.NumUsers, len(opts.PostSlugs))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d demo users created", len(users))

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var comments, likes, views int
	for _, slug := range opts.PostSlugs {
		for i := 0; i < opts.CommentsPerPost; i++ {
			author := users[r.Intn(len(users))]
			if _, err := f.CreateComment(author, slug); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			comments++
		}
		for _, user := range users {
			// Roughly half the users like each post, most have viewed it.
			if r.Intn(2) == 0 {
				if err := f.CreateLike(user, slug); err != nil {
					return fmt.Errorf("failed to create like: %w", err)
				}
				likes++
			}
			if r.Intn(4) != 0 {
				if err := f.CreateView(user, slug); err != nil {
					return fmt.Errorf("failed to create view: %w", err)
				}
				views++
			}
		}
	}
	log.Printf("%d comments, %d likes, %d views created", comments, likes, views)

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, views, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
