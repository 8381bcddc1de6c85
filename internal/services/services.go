package services

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campushub/internal/utils"
)

const cacheSize = 128

// Services is every store and service the portal uses, built once at
// startup and handed to the HTTP layer.
type Services struct {
	Identities   *IdentityResolver
	Auth         *AuthService
	Blocks       *BlockList
	Comments     *CommentStore
	Polls        *PollStore
	Posts        *PostService
	Marquees     *MarqueeService
	AdminUpdates *AdminUpdateService
}

func New(db *gorm.DB, log *zap.Logger, superAdminEmail string) (*Services, error) {
	cache, err := utils.NewCache(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	resolver := NewIdentityResolver(db, superAdminEmail)
	blocks := NewBlockList(db, log.Named("blocks"))
	comments := NewCommentStore(db, blocks, log.Named("comments"))
	polls := NewPollStore(db, log.Named("polls"))

	return &Services{
		Identities:   resolver,
		Auth:         NewAuthService(db, resolver, log.Named("auth")),
		Blocks:       blocks,
		Comments:     comments,
		Polls:        polls,
		Posts:        NewPostService(db, comments, polls, utils.NewMarkdownRenderer(), cache, log.Named("posts")),
		Marquees:     NewMarqueeService(db, log.Named("marquees")),
		AdminUpdates: NewAdminUpdateService(db, log.Named("admin_updates")),
	}, nil
}
