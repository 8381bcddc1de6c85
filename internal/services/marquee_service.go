package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campushub/internal/models"
)

const MaxMarqueeLength = 500

// MarqueeService manages the ticker lines above the board.
type MarqueeService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewMarqueeService(db *gorm.DB, log *zap.Logger) *MarqueeService {
	return &MarqueeService{db: db, log: log, now: time.Now}
}

// List is public; newest first.
func (s *MarqueeService) List(ctx context.Context) ([]models.Marquee, error) {
	var items []models.Marquee
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list marquees: %w", err)
	}
	return items, nil
}

func (s *MarqueeService) Add(ctx context.Context, id *Identity, text string) (*models.Marquee, error) {
	if err := id.requireModerator("add marquee messages"); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationError("Marquee text cannot be empty.")
	}
	if len([]rune(text)) > MaxMarqueeLength {
		return nil, validationError("Marquee text must be at most %d characters.", MaxMarqueeLength)
	}

	item := models.Marquee{ID: uuid.NewString(), Text: text, CreatedAt: s.now().UTC()}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("add marquee: %w", err)
	}

	s.log.Info("Marquee added", zap.String("id", item.ID), zap.String("by", id.ModeratorName()))
	return &item, nil
}

func (s *MarqueeService) Delete(ctx context.Context, id *Identity, marqueeID string) error {
	if err := id.requireModerator("delete marquee messages"); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Where("id = ?", marqueeID).Delete(&models.Marquee{})
	if res.Error != nil {
		return fmt.Errorf("delete marquee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return newError(KindNotFound, "Marquee message not found.")
	}

	s.log.Info("Marquee deleted", zap.String("id", marqueeID), zap.String("by", id.ModeratorName()))
	return nil
}
