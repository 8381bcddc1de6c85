package models

import (
	"time"
)

// Marquee is a short ticker line shown above the announcement board.
type Marquee struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
}

// AdminUpdate is an internal note visible to moderators only.
type AdminUpdate struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Author    string    `gorm:"size:100;not null" json:"author"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
}
