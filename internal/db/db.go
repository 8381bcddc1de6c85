package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campushub/internal/models"
	"campushub/internal/utils"
)

const sqlitePrefix = "sqlite:"

// Open connects to postgres, or to sqlite when the DSN starts with "sqlite:".
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	dialector := postgres.Open(dsn)
	if strings.HasPrefix(dsn, sqlitePrefix) {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(log.Named("gorm"), gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established", zap.String("dialect", gdb.Dialector.Name()))
	return gdb, nil
}

// Migrate creates or updates every table the portal uses.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.Admin{},
		&models.Post{},
		&models.PostMedia{},
		&models.Comment{},
		&models.CommentReport{},
		&models.BlockedAuthor{},
		&models.Poll{},
		&models.PollOption{},
		&models.PollVote{},
		&models.Marquee{},
		&models.AdminUpdate{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedSuperAdmin creates the super admin account if no admin with that
// email exists yet. An existing account is left untouched.
func SeedSuperAdmin(gdb *gorm.DB, name, email, password string) (created bool, err error) {
	email = utils.NormalizeEmail(email)

	var existing models.Admin
	err = gdb.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("look up super admin: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash super admin password: %w", err)
	}

	admin := models.Admin{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("create super admin: %w", err)
	}
	return true, nil
}
