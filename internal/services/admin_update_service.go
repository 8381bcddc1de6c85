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

// AdminUpdateService is the moderators' internal notice feed. Every
// moderator can read it; only the super admin writes to it.
type AdminUpdateService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewAdminUpdateService(db *gorm.DB, log *zap.Logger) *AdminUpdateService {
	return &AdminUpdateService{db: db, log: log, now: time.Now}
}

func (s *AdminUpdateService) List(ctx context.Context, id *Identity) ([]models.AdminUpdate, error) {
	if err := id.requireModerator("view admin updates"); err != nil {
		return nil, err
	}

	var updates []models.AdminUpdate
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("list admin updates: %w", err)
	}
	return updates, nil
}

func (s *AdminUpdateService) Add(ctx context.Context, id *Identity, content string) (*models.AdminUpdate, error) {
	if err := id.requireSuperAdmin("post admin updates"); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("Update content cannot be empty.")
	}

	update := models.AdminUpdate{
		ID:        uuid.NewString(),
		Author:    id.ModeratorName(),
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&update).Error; err != nil {
		return nil, fmt.Errorf("add admin update: %w", err)
	}

	s.log.Info("Admin update posted", zap.String("id", update.ID))
	return &update, nil
}

func (s *AdminUpdateService) Delete(ctx context.Context, id *Identity, updateID string) error {
	if err := id.requireSuperAdmin("delete admin updates"); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Where("id = ?", updateID).Delete(&models.AdminUpdate{})
	if res.Error != nil {
		return fmt.Errorf("delete admin update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return newError(KindNotFound, "Admin update not found.")
	}

	s.log.Info("Admin update deleted", zap.String("id", updateID))
	return nil
}
