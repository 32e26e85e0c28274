package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a blog post. Posts live in the headless CMS
// and are referenced by slug only; there is no posts table to point a foreign
// key at.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	PostSlug  string         `gorm:"type:varchar(255);not null;index" json:"post_slug"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
