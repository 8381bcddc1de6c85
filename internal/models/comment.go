package models

import (
	"time"
)

// Comment is a student's remark on an announcement. Authors are identified
// only by the display name they typed.
type Comment struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`
	PostID     string          `gorm:"size:36;not null;index" json:"post_id"`
	AuthorName string          `gorm:"size:50;not null" json:"author_name"`
	Content    string          `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time       `gorm:"index" json:"timestamp"`
	Reports    []CommentReport `gorm:"foreignKey:CommentID" json:"-"`

	// Filled from Reports after loading
	ReportedBy []string `gorm:"-" json:"reports"`
}

// FillReporters copies the loaded report rows into ReportedBy.
func (c *Comment) FillReporters() {
	c.ReportedBy = make([]string, 0, len(c.Reports))
	for _, r := range c.Reports {
		c.ReportedBy = append(c.ReportedBy, r.Reporter)
	}
}
