package models

import (
	"time"
)

// CommentReport is one reporter's flag on a comment. The composite primary
// key makes a comment's reports a set of names.
type CommentReport struct {
	CommentID string    `gorm:"primaryKey;size:36" json:"comment_id"`
	Reporter  string    `gorm:"primaryKey;size:50" json:"reporter"`
	CreatedAt time.Time `json:"created_at"`
}
