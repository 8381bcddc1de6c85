package models

import (
	"time"
)

// PollVote records which option a client picked. One row per (poll, client).
type PollVote struct {
	PollID    string    `gorm:"primaryKey;size:36" json:"poll_id"`
	ClientID  string    `gorm:"primaryKey;size:36" json:"-"`
	OptionID  string    `gorm:"size:36;not null" json:"option_id"`
	CreatedAt time.Time `json:"created_at"`
}
