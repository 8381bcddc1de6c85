package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campushub/internal/models"
	"campushub/internal/testutil"
)

type fixture struct {
	ctx   context.Context
	db    *gorm.DB
	svc   *Services
	super *Identity
	mod   *Identity
	anon  *Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := testutil.SetupTestDB(t)
	svc, err := New(gdb, zap.NewNop(), testutil.SuperAdminEmail)
	require.NoError(t, err)

	superAdmin := testutil.CreateTestAdmin(t, gdb, "Portal Admin", testutil.SuperAdminEmail, testutil.SuperAdminPassword)
	moderator := testutil.CreateTestAdmin(t, gdb, "Dean Rivera", "dean@campus.edu", "dean-pass")

	return &fixture{
		ctx:   context.Background(),
		db:    gdb,
		svc:   svc,
		super: svc.Identities.ForAdmin(superAdmin, "client-super", ""),
		mod:   svc.Identities.ForAdmin(moderator, "client-mod", ""),
		anon:  Anonymous("client-anon", ""),
	}
}

func (f *fixture) post(t *testing.T, title string) *models.Post {
	t.Helper()
	return testutil.CreateTestPost(t, f.db, title)
}

// clock returns a time source that advances one second per call.
func clock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}
