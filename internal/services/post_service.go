package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campushub/internal/models"
	"campushub/internal/utils"
)

const MaxPostTitleLength = 200

const renderedTTL = time.Hour

type MediaInput struct {
	URL     string `json:"url"`
	DataURL string `json:"dataUrl"`
	Name    string `json:"name"`
	Type    string `json:"type"`
}

type PollInput struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// PostInput is the editable part of an announcement.
type PostInput struct {
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Media   []MediaInput `json:"media"`
	Poll    *PollInput   `json:"poll"`
}

// PostService manages announcements and owns the deletion cascade.
type PostService struct {
	db       *gorm.DB
	comments *CommentStore
	polls    *PollStore
	markdown *utils.MarkdownRenderer
	rendered *utils.Cache
	log      *zap.Logger
	now      func() time.Time
}

func NewPostService(db *gorm.DB, comments *CommentStore, polls *PollStore, markdown *utils.MarkdownRenderer, rendered *utils.Cache, log *zap.Logger) *PostService {
	return &PostService{
		db:       db,
		comments: comments,
		polls:    polls,
		markdown: markdown,
		rendered: rendered,
		log:      log,
		now:      time.Now,
	}
}

func mediaByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// List returns announcements newest first. A non-empty author limits the
// result to that author's posts.
func (s *PostService) List(ctx context.Context, author string) ([]models.Post, error) {
	query := s.db.WithContext(ctx).Preload("Media", mediaByPosition).Order("timestamp DESC")
	if author = strings.TrimSpace(author); author != "" {
		query = query.Where("author = ?", author)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Authors lists the distinct post authors for the board's filter.
func (s *PostService) Authors(ctx context.Context) ([]string, error) {
	var authors []string
	err := s.db.WithContext(ctx).Model(&models.Post{}).
		Distinct("author").
		Order("author ASC").
		Pluck("author", &authors).Error
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Media", mediaByPosition).Where("id = ?", postID).First(&post).Error
	if err != nil {
		return nil, notFoundOr(err, "Announcement")
	}
	return &post, nil
}

// Create publishes an announcement under the moderator's name. An attached
// poll is created in the same transaction.
func (s *PostService) Create(ctx context.Context, id *Identity, in PostInput) (*models.Post, error) {
	if err := id.requireModerator("create announcements"); err != nil {
		return nil, err
	}
	if err := validatePost(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post := models.Post{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Author:    id.ModeratorName(),
		Content:   in.Content,
		Timestamp: now,
	}
	post.Media = buildMedia(post.ID, in.Media)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		if in.Poll != nil {
			if _, err := s.polls.withDB(tx).AddPoll(ctx, id, post.ID, in.Poll.Question, in.Poll.Options); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Announcement created", zap.String("post_id", post.ID), zap.String("author", post.Author))
	return &post, nil
}

// Update replaces title, content and media and bumps the post's timestamp.
// The author and any existing poll are left as they are.
func (s *PostService) Update(ctx context.Context, id *Identity, postID string, in PostInput) (*models.Post, error) {
	if err := id.requireModerator("edit announcements"); err != nil {
		return nil, err
	}
	if err := validatePost(in); err != nil {
		return nil, err
	}

	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			return notFoundOr(err, "Announcement")
		}

		post.Title = strings.TrimSpace(in.Title)
		post.Content = in.Content
		post.Timestamp = s.now().UTC()
		if err := tx.Model(&post).Select("title", "content", "timestamp").Updates(&post).Error; err != nil {
			return fmt.Errorf("update post: %w", err)
		}

		if err := tx.Where("post_id = ?", postID).Delete(&models.PostMedia{}).Error; err != nil {
			return fmt.Errorf("clear media: %w", err)
		}
		post.Media = buildMedia(postID, in.Media)
		if len(post.Media) > 0 {
			if err := tx.Create(&post.Media).Error; err != nil {
				return fmt.Errorf("save media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Announcement updated", zap.String("post_id", postID), zap.String("by", id.ModeratorName()))
	return &post, nil
}

// Delete removes an announcement with its comments, report sets, poll and
// vote records in one transaction.
func (s *PostService) Delete(ctx context.Context, id *Identity, postID string) error {
	if err := id.requireModerator("delete announcements"); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePost(tx, postID); err != nil {
			return err
		}
		if err := s.comments.withDB(tx).DeleteAllForPost(ctx, postID); err != nil {
			return err
		}
		if err := s.polls.withDB(tx).DeleteForPost(ctx, postID); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostMedia{}).Error; err != nil {
			return fmt.Errorf("delete media: %w", err)
		}
		if err := tx.Where("id = ?", postID).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Announcement deleted", zap.String("post_id", postID), zap.String("by", id.ModeratorName()))
	return nil
}

// RenderContent converts the post's markdown into sanitized HTML. Output is
// cached by content digest, so an edit never serves the old rendering.
func (s *PostService) RenderContent(post *models.Post) template.HTML {
	sum := sha256.Sum256([]byte(post.Content))
	key := "md:" + hex.EncodeToString(sum[:])
	if out, ok := s.rendered.Get(key).(template.HTML); ok {
		return out
	}

	out, err := s.markdown.Render(post.Content)
	if err != nil {
		s.log.Warn("Failed to render announcement", zap.String("post_id", post.ID), zap.Error(err))
		return template.HTML(template.HTMLEscapeString(post.Content))
	}
	s.rendered.Set(key, out, renderedTTL)
	return out
}

func validatePost(in PostInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return validationError("Title is required.")
	}
	if len([]rune(title)) > MaxPostTitleLength {
		return validationError("Title must be at most %d characters.", MaxPostTitleLength)
	}
	if strings.TrimSpace(in.Content) == "" && len(in.Media) == 0 {
		return validationError("Add some content or at least one attachment.")
	}
	for _, m := range in.Media {
		if strings.TrimSpace(m.URL) == "" && strings.TrimSpace(m.DataURL) == "" {
			return validationError("Every attachment needs a file.")
		}
	}
	return nil
}

func buildMedia(postID string, in []MediaInput) []models.PostMedia {
	media := make([]models.PostMedia, 0, len(in))
	for i, m := range in {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			name = fmt.Sprintf("attachment-%d", i+1)
		}
		media = append(media, models.PostMedia{
			PostID:   postID,
			Position: i,
			URL:      strings.TrimSpace(m.URL),
			DataURL:  m.DataURL,
			Name:     name,
			Type:     strings.TrimSpace(m.Type),
		})
	}
	return media
}
