package models

import "time"

// Like represents a user's like on a blog post.
// The combination of PostSlug and UserID must be unique; the constraint is the
// authoritative guard against concurrent duplicate likes. Rows are hard
// deleted on unlike so the pair can be re-liked.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostSlug  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_likes_post_user" json:"post_slug"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
