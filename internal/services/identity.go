package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"campushub/internal/models"
)

// Identity is who is acting in the current request: an optional signed-in
// moderator plus the anonymous commenter state every browser carries.
type Identity struct {
	Moderator  *models.Admin
	SuperAdmin bool

	// CommenterName is the display name last used in the comment form.
	CommenterName string
	// ClientID identifies the browser for one-vote-per-poll tracking.
	ClientID string
}

// Anonymous returns an identity without moderator privileges.
func Anonymous(clientID, commenterName string) *Identity {
	return &Identity{ClientID: clientID, CommenterName: commenterName}
}

func (i *Identity) IsModerator() bool {
	return i != nil && i.Moderator != nil
}

// ModeratorName is empty for anonymous identities.
func (i *Identity) ModeratorName() string {
	if !i.IsModerator() {
		return ""
	}
	return i.Moderator.Name
}

// RequireModerator fails with an authorization error unless a moderator is signed in.
func (i *Identity) RequireModerator() error {
	return i.requireModerator("perform this action")
}

// RequireSuperAdmin fails unless the signed-in moderator is the super admin.
func (i *Identity) RequireSuperAdmin() error {
	return i.requireSuperAdmin("perform this action")
}

func (i *Identity) requireModerator(action string) error {
	if !i.IsModerator() {
		return newError(KindAuthorization, "You must be an admin to %s.", action)
	}
	return nil
}

func (i *Identity) requireSuperAdmin(action string) error {
	if err := i.requireModerator(action); err != nil {
		return err
	}
	if !i.SuperAdmin {
		return newError(KindAuthorization, "Only the super admin can %s.", action)
	}
	return nil
}

func (i *Identity) rememberCommenter(name string) {
	if i != nil {
		i.CommenterName = name
	}
}

// IdentityResolver turns session state into an Identity.
type IdentityResolver struct {
	db              *gorm.DB
	superAdminEmail string
}

func NewIdentityResolver(db *gorm.DB, superAdminEmail string) *IdentityResolver {
	return &IdentityResolver{db: db, superAdminEmail: superAdminEmail}
}

// Resolve loads the moderator behind adminID. A session that points at a
// removed admin resolves to an anonymous identity rather than an error.
func (r *IdentityResolver) Resolve(ctx context.Context, adminID, commenterName, clientID string) (*Identity, error) {
	id := Anonymous(clientID, commenterName)
	if adminID == "" {
		return id, nil
	}

	var admin models.Admin
	err := r.db.WithContext(ctx).Where("id = ?", adminID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return id, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve admin session: %w", err)
	}

	return r.ForAdmin(&admin, clientID, commenterName), nil
}

// ForAdmin builds the identity of a signed-in moderator.
func (r *IdentityResolver) ForAdmin(admin *models.Admin, clientID, commenterName string) *Identity {
	return &Identity{
		Moderator:     admin,
		SuperAdmin:    r.IsSuperAdminEmail(admin.Email),
		CommenterName: commenterName,
		ClientID:      clientID,
	}
}

func (r *IdentityResolver) IsSuperAdminEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(r.superAdminEmail))
}
