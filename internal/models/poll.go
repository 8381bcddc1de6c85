package models

import (
	"math"
	"time"
)

// Poll is the single multiple-choice question attached to an announcement.
type Poll struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	PostID    string       `gorm:"size:36;not null;uniqueIndex" json:"post_id"`
	Question  string       `gorm:"not null" json:"question"`
	Options   []PollOption `gorm:"foreignKey:PollID" json:"options"`
	CreatedAt time.Time    `json:"created_at"`
}

type PollOption struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	PollID   string `gorm:"size:36;not null;index" json:"-"`
	Position int    `gorm:"not null" json:"-"`
	Text     string `gorm:"not null" json:"text"`
	Votes    int    `gorm:"not null;default:0" json:"votes"`
}

// TotalVotes sums the tallies of every option.
func (p *Poll) TotalVotes() int {
	total := 0
	for _, o := range p.Options {
		total += o.Votes
	}
	return total
}

// Percentage is the option's share of all votes, rounded to a whole percent.
// A poll without votes reports 0 for every option.
func (p *Poll) Percentage(option PollOption) int {
	total := p.TotalVotes()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(option.Votes) / float64(total)))
}
