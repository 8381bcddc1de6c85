package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campushub/internal/models"
	"campushub/internal/utils"
)

const minPasswordLength = 6

// AuthService checks moderator credentials and manages admin accounts.
type AuthService struct {
	db       *gorm.DB
	resolver *IdentityResolver
	log      *zap.Logger
}

func NewAuthService(db *gorm.DB, resolver *IdentityResolver, log *zap.Logger) *AuthService {
	return &AuthService{db: db, resolver: resolver, log: log}
}

// Login returns the admin whose credentials match.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Admin, error) {
	invalid := newError(KindAuthorization, "Invalid email or password.")

	var admin models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", utils.NormalizeEmail(email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, fmt.Errorf("look up admin: %w", err)
	}

	if !utils.CheckPasswordHash(password, admin.Password) {
		s.log.Warn("Failed admin login", zap.String("email", admin.Email))
		return nil, invalid
	}
	return &admin, nil
}

func (s *AuthService) ListAdmins(ctx context.Context, id *Identity) ([]models.Admin, error) {
	if err := id.requireModerator("view admins"); err != nil {
		return nil, err
	}

	var admins []models.Admin
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

func (s *AuthService) AddAdmin(ctx context.Context, id *Identity, name, email, password string) (*models.Admin, error) {
	if err := id.requireSuperAdmin("manage admins"); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = utils.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, validationError("Name, email, and password are required.")
	}
	if !strings.Contains(email, "@") {
		return nil, validationError("%q is not a valid email address.", email)
	}
	if len(password) < minPasswordLength {
		return nil, validationError("Password must be at least %d characters.", minPasswordLength)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	admin := models.Admin{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: hash,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return fmt.Errorf("check admin email: %w", err)
		}
		if count > 0 {
			return newError(KindConflict, "An admin with email %s already exists.", email)
		}
		if err := tx.Create(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return newError(KindConflict, "An admin with email %s already exists.", email)
			}
			return fmt.Errorf("create admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Admin added", zap.String("email", email), zap.String("by", id.ModeratorName()))
	return &admin, nil
}

func (s *AuthService) RemoveAdmin(ctx context.Context, id *Identity, email string) error {
	if err := id.requireSuperAdmin("manage admins"); err != nil {
		return err
	}

	email = utils.NormalizeEmail(email)
	if s.resolver.IsSuperAdminEmail(email) {
		return validationError("The super admin account cannot be removed.")
	}

	res := s.db.WithContext(ctx).Where("email = ?", email).Delete(&models.Admin{})
	if res.Error != nil {
		return fmt.Errorf("remove admin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return newError(KindNotFound, "Admin %s not found.", email)
	}

	s.log.Info("Admin removed", zap.String("email", email), zap.String("by", id.ModeratorName()))
	return nil
}
