package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campushub/internal/models"
	"campushub/internal/utils"
)

// BlockList holds the display names that may no longer comment. Matching is
// case-insensitive. Names are not identities: two students sharing a display
// name share its block status. Lookups always read the table so a block
// applies to the next comment on every instance.
type BlockList struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewBlockList(db *gorm.DB, log *zap.Logger) *BlockList {
	return &BlockList{db: db, log: log}
}

// Block adds name to the list. Blank or already blocked names are a no-op.
func (b *BlockList) Block(ctx context.Context, id *Identity, name string) error {
	if err := id.requireModerator("block users"); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	key := utils.FoldName(name)
	if key == "" {
		return nil
	}

	entry := models.BlockedAuthor{Name: name, NameKey: key}
	res := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name_key"}}, DoNothing: true}).
		Create(&entry)
	if res.Error != nil {
		return fmt.Errorf("block author: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		b.log.Info("Author blocked", zap.String("name", name), zap.String("by", id.ModeratorName()))
	}
	return nil
}

// Unblock removes name from the list; unknown names are a no-op.
func (b *BlockList) Unblock(ctx context.Context, id *Identity, name string) error {
	if err := id.requireModerator("unblock users"); err != nil {
		return err
	}

	key := utils.FoldName(name)
	if key == "" {
		return nil
	}
	if err := b.db.WithContext(ctx).Where("name_key = ?", key).Delete(&models.BlockedAuthor{}).Error; err != nil {
		return fmt.Errorf("unblock author: %w", err)
	}

	b.log.Info("Author unblocked", zap.String("name", name), zap.String("by", id.ModeratorName()))
	return nil
}

// IsBlocked reports whether name matches a blocked entry ignoring case.
// A blank name is never blocked.
func (b *BlockList) IsBlocked(ctx context.Context, name string) (bool, error) {
	key := utils.FoldName(name)
	if key == "" {
		return false, nil
	}

	var count int64
	if err := b.db.WithContext(ctx).Model(&models.BlockedAuthor{}).Where("name_key = ?", key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check blocked author: %w", err)
	}
	return count > 0, nil
}

func (b *BlockList) List(ctx context.Context) ([]models.BlockedAuthor, error) {
	var entries []models.BlockedAuthor
	if err := b.db.WithContext(ctx).Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list blocked authors: %w", err)
	}
	return entries, nil
}
