// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// AnonymousUsername is the well-known username of the shared placeholder user
// that owns every comment posted without an authenticated identity. The row is
// created lazily on first anonymous comment; the unique constraint on username
// is the race guard.
const AnonymousUsername = "anonymous"

// AnonymousEmail is the placeholder email of the shared anonymous user.
const AnonymousEmail = "anonymous@blog.local"

// User represents an account in the Inkwell blog platform. Accounts are
// created by the external auth/profile system (or seeded); this service only
// reads them and lazily creates the shared anonymous placeholder.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"unique;not null" json:"username"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	DisplayName string         `json:"display_name"`
	Avatar      string         `json:"avatar"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Comments    []Comment      `gorm:"foreignKey:UserID" json:"comments,omitempty"`
}

// Name returns the user's display name, falling back to the username.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// IsAnonymous reports whether this is the shared anonymous placeholder.
func (u *User) IsAnonymous() bool {
	return u.Username == AnonymousUsername
}
