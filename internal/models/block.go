package models

import (
	"time"
)

// BlockedAuthor bans a display name from commenting. NameKey is the
// case-folded name and is unique, so case variants collapse into one row.
type BlockedAuthor struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	NameKey   string    `gorm:"size:50;not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
