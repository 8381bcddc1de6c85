package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campushub/internal/models"
)

const (
	MaxCommenterNameLength = 50
	MaxCommentLength       = 2000
)

// CommentStore owns comments and their report sets.
type CommentStore struct {
	db     *gorm.DB
	blocks *BlockList
	log    *zap.Logger
	now    func() time.Time
}

func NewCommentStore(db *gorm.DB, blocks *BlockList, log *zap.Logger) *CommentStore {
	return &CommentStore{db: db, blocks: blocks, log: log, now: time.Now}
}

// withDB returns a copy bound to tx, for use inside a caller's transaction.
func (s *CommentStore) withDB(tx *gorm.DB) *CommentStore {
	c := *s
	c.db = tx
	return &c
}

func reportsByTime(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// ListForPost returns the post's comments, most recent first.
func (s *CommentStore) ListForPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Reports", reportsByTime).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	for i := range comments {
		comments[i].FillReporters()
	}
	return comments, nil
}

// Add posts a comment as authorName. Name and content are trimmed; the name
// becomes the identity's remembered commenter name.
func (s *CommentStore) Add(ctx context.Context, id *Identity, postID, authorName, content string) (*models.Comment, error) {
	name := strings.TrimSpace(authorName)
	body := strings.TrimSpace(content)
	if name == "" || body == "" {
		return nil, validationError("Name and comment cannot be empty.")
	}
	if utf8.RuneCountInString(name) > MaxCommenterNameLength {
		return nil, validationError("Name must be at most %d characters.", MaxCommenterNameLength)
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return nil, validationError("Comment must be at most %d characters.", MaxCommentLength)
	}

	blocked, err := s.blocks.IsBlocked(ctx, name)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, newError(KindBlockedAuthor, "The user %q has been blocked from commenting.", name)
	}

	if err := requirePost(s.db.WithContext(ctx), postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:         uuid.NewString(),
		PostID:     postID,
		AuthorName: name,
		Content:    body,
		CreatedAt:  s.now().UTC(),
		ReportedBy: []string{},
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	id.rememberCommenter(name)
	return &comment, nil
}

// Report flags a comment on behalf of reporterName. Reporting twice under the
// same name counts once.
func (s *CommentStore) Report(ctx context.Context, commentID, reporterName string) error {
	reporter := strings.TrimSpace(reporterName)
	if reporter == "" {
		return newError(KindMissingReporter, "You must provide your name in the comment form before reporting.")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findComment(tx, commentID); err != nil {
			return err
		}

		report := models.CommentReport{
			CommentID: commentID,
			Reporter:  reporter,
			CreatedAt: s.now().UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&report).Error; err != nil {
			return fmt.Errorf("report comment: %w", err)
		}
		return nil
	})
}

// Unreport clears every report on the comment.
func (s *CommentStore) Unreport(ctx context.Context, id *Identity, commentID string) error {
	if err := id.requireModerator("clear reports"); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findComment(tx, commentID); err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.CommentReport{}).Error; err != nil {
			return fmt.Errorf("clear reports: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Comment reports cleared", zap.String("comment_id", commentID), zap.String("by", id.ModeratorName()))
	return nil
}

// Delete removes a comment and its reports.
func (s *CommentStore) Delete(ctx context.Context, id *Identity, commentID string) error {
	if err := id.requireModerator("delete comments"); err != nil {
		return err
	}

	var comment *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if comment, err = findComment(tx, commentID); err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.CommentReport{}).Error; err != nil {
			return fmt.Errorf("delete comment reports: %w", err)
		}
		if err := tx.Where("id = ?", commentID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Comment deleted",
		zap.String("comment_id", commentID),
		zap.String("author", comment.AuthorName),
		zap.String("by", id.ModeratorName()))
	return nil
}

// DeleteAllForPost removes every comment on the post. Part of the post
// deletion cascade.
func (s *CommentStore) DeleteAllForPost(ctx context.Context, postID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", postID)
		if err := tx.Where("comment_id IN (?)", ids).Delete(&models.CommentReport{}).Error; err != nil {
			return fmt.Errorf("delete post comment reports: %w", err)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete post comments: %w", err)
		}
		return nil
	})
}

// ListReported returns comments with at least one report, most reported first.
func (s *CommentStore) ListReported(ctx context.Context, id *Identity) ([]models.Comment, error) {
	if err := id.requireModerator("review reported comments"); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var comments []models.Comment
	err := db.
		Preload("Reports", reportsByTime).
		Where("id IN (?)", db.Model(&models.CommentReport{}).Select("comment_id")).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list reported comments: %w", err)
	}

	for i := range comments {
		comments[i].FillReporters()
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return len(comments[i].ReportedBy) > len(comments[j].ReportedBy)
	})
	return comments, nil
}

func findComment(db *gorm.DB, commentID string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.Where("id = ?", commentID).First(&comment).Error; err != nil {
		return nil, notFoundOr(err, "Comment")
	}
	return &comment, nil
}

func requirePost(db *gorm.DB, postID string) error {
	var post models.Post
	err := db.Select("id").Where("id = ?", postID).First(&post).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(KindNotFound, "Announcement not found.")
	}
	return fmt.Errorf("load announcement: %w", err)
}
