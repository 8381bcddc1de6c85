package models

import (
	"time"
)

// Post is an announcement written by a moderator.
type Post struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	Title     string      `gorm:"not null" json:"title"`
	Author    string      `gorm:"size:100;not null;index" json:"author"`
	Content   string      `gorm:"type:text" json:"content"` // markdown
	Media     []PostMedia `gorm:"foreignKey:PostID" json:"media"`
	Timestamp time.Time   `gorm:"not null;index" json:"timestamp"` // bumped on edit
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PostMedia is an attachment. Either URL (hosted file) or DataURL (inline upload) is set.
type PostMedia struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PostID   string `gorm:"size:36;not null;index" json:"-"`
	Position int    `gorm:"not null" json:"-"`
	URL      string `json:"url,omitempty"`
	DataURL  string `gorm:"type:text" json:"data_url,omitempty"`
	Name     string `gorm:"not null" json:"name"`
	Type     string `gorm:"size:100;not null" json:"type"`
}
