package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campushub/internal/models"
)

const (
	MinPollOptions = 2
	MaxPollOptions = 10
)

// PollStore owns polls, their tallies and each client's vote record.
type PollStore struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewPollStore(db *gorm.DB, log *zap.Logger) *PollStore {
	return &PollStore{db: db, log: log, now: time.Now}
}

func (s *PollStore) withDB(tx *gorm.DB) *PollStore {
	c := *s
	c.db = tx
	return &c
}

func optionsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// GetForPost returns the post's poll, or nil when the post has none.
func (s *PollStore) GetForPost(ctx context.Context, postID string) (*models.Poll, error) {
	var poll models.Poll
	err := s.db.WithContext(ctx).
		Preload("Options", optionsByPosition).
		Where("post_id = ?", postID).
		First(&poll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load poll: %w", err)
	}
	return &poll, nil
}

// GetUserVote returns the option the client voted for, if any.
func (s *PollStore) GetUserVote(ctx context.Context, clientID, pollID string) (string, bool, error) {
	if clientID == "" {
		return "", false, nil
	}

	var vote models.PollVote
	err := s.db.WithContext(ctx).Where("poll_id = ? AND client_id = ?", pollID, clientID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load vote: %w", err)
	}
	return vote.OptionID, true, nil
}

// CastVote records the client's vote and increments the option's tally.
// Each client gets one tally per poll; a second vote is rejected and
// changes nothing.
func (s *PollStore) CastVote(ctx context.Context, clientID, pollID, optionID string) error {
	if strings.TrimSpace(clientID) == "" {
		return validationError("A browser session is required to vote.")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var option models.PollOption
		if err := tx.Where("id = ? AND poll_id = ?", optionID, pollID).First(&option).Error; err != nil {
			return notFoundOr(err, "Poll option")
		}

		vote := models.PollVote{
			PollID:    pollID,
			ClientID:  clientID,
			OptionID:  optionID,
			CreatedAt: s.now().UTC(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote)
		if res.Error != nil {
			return fmt.Errorf("record vote: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return newError(KindConflict, "You have already voted in this poll.")
		}

		err := tx.Model(&models.PollOption{}).
			Where("id = ?", optionID).
			UpdateColumn("votes", gorm.Expr("votes + ?", 1)).Error
		if err != nil {
			return fmt.Errorf("count vote: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug("Vote cast", zap.String("poll_id", pollID), zap.String("option_id", optionID))
	return nil
}

// AddPoll attaches a new poll to a post. A post holds at most one poll.
func (s *PollStore) AddPoll(ctx context.Context, id *Identity, postID, question string, optionTexts []string) (*models.Poll, error) {
	if err := id.requireModerator("create polls"); err != nil {
		return nil, err
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, validationError("Poll question cannot be empty.")
	}
	if len(optionTexts) < MinPollOptions || len(optionTexts) > MaxPollOptions {
		return nil, validationError("A poll needs between %d and %d options.", MinPollOptions, MaxPollOptions)
	}

	poll := models.Poll{
		ID:        uuid.NewString(),
		PostID:    postID,
		Question:  question,
		CreatedAt: s.now().UTC(),
		Options:   make([]models.PollOption, 0, len(optionTexts)),
	}
	for i, text := range optionTexts {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, validationError("Poll options cannot be empty.")
		}
		poll.Options = append(poll.Options, models.PollOption{
			ID:       uuid.NewString(),
			PollID:   poll.ID,
			Position: i,
			Text:     text,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePost(tx, postID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Poll{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
			return fmt.Errorf("check existing poll: %w", err)
		}
		if count > 0 {
			return validationError("This announcement already has a poll.")
		}

		if err := tx.Create(&poll).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return validationError("This announcement already has a poll.")
			}
			return fmt.Errorf("create poll: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Poll created", zap.String("post_id", postID), zap.Int("options", len(poll.Options)))
	return &poll, nil
}

// DeleteForPost removes the post's poll with its options and vote records.
func (s *PollStore) DeleteForPost(ctx context.Context, postID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pollIDs := tx.Model(&models.Poll{}).Select("id").Where("post_id = ?", postID)
		if err := tx.Where("poll_id IN (?)", pollIDs).Delete(&models.PollVote{}).Error; err != nil {
			return fmt.Errorf("delete poll votes: %w", err)
		}
		if err := tx.Where("poll_id IN (?)", pollIDs).Delete(&models.PollOption{}).Error; err != nil {
			return fmt.Errorf("delete poll options: %w", err)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Poll{}).Error; err != nil {
			return fmt.Errorf("delete poll: %w", err)
		}
		return nil
	})
}

// OptionResult is one row of the results view.
type OptionResult struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Votes      int    `json:"votes"`
	Percentage int    `json:"percentage"`
	Chosen     bool   `json:"chosen"`
}

// PollResults is a poll as seen by one client: tallies, percentages and the
// client's own choice. HasVoted decides between ballot and results views.
type PollResults struct {
	PollID     string         `json:"poll_id"`
	PostID     string         `json:"post_id"`
	Question   string         `json:"question"`
	TotalVotes int            `json:"total_votes"`
	Options    []OptionResult `json:"options"`
	HasVoted   bool           `json:"has_voted"`
	UserVote   string         `json:"user_vote,omitempty"`
}

// Results returns the post's poll for clientID, or nil when there is no poll.
func (s *PollStore) Results(ctx context.Context, clientID, postID string) (*PollResults, error) {
	poll, err := s.GetForPost(ctx, postID)
	if err != nil || poll == nil {
		return nil, err
	}

	choice, voted, err := s.GetUserVote(ctx, clientID, poll.ID)
	if err != nil {
		return nil, err
	}

	results := &PollResults{
		PollID:     poll.ID,
		PostID:     poll.PostID,
		Question:   poll.Question,
		TotalVotes: poll.TotalVotes(),
		Options:    make([]OptionResult, 0, len(poll.Options)),
		HasVoted:   voted,
		UserVote:   choice,
	}
	for _, o := range poll.Options {
		results.Options = append(results.Options, OptionResult{
			ID:         o.ID,
			Text:       o.Text,
			Votes:      o.Votes,
			Percentage: poll.Percentage(o),
			Chosen:     voted && o.ID == choice,
		})
	}
	return results, nil
}
