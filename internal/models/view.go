package models

import "time"

// View records that a user has viewed a blog post. At most one row exists per
// (post_slug, user_id) pair, so counting rows per slug yields a distinct-viewer
// count rather than a raw hit count. Repeat views only advance LastViewAt, and
// only once the dedup window has elapsed.
type View struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostSlug   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_views_post_user" json:"post_slug"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_views_post_user" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastViewAt time.Time `gorm:"not null" json:"last_view_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
