package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campushub/internal/models"
	"campushub/internal/utils"
)

func TestOpenMigrateSeed(t *testing.T) {
	dsn := "sqlite:" + filepath.Join(t.TempDir(), "portal.db")

	gdb, err := Open(dsn, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", gdb.Dialector.Name())

	require.NoError(t, Migrate(gdb))
	// migrating twice is harmless
	require.NoError(t, Migrate(gdb))

	created, err := SeedSuperAdmin(gdb, "Dean", " Dean@Campus.edu ", "s3cret!")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedSuperAdmin(gdb, "Someone Else", "dean@campus.edu", "other-pass")
	require.NoError(t, err)
	assert.False(t, created)

	var admins []models.Admin
	require.NoError(t, gdb.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "Dean", admins[0].Name)
	assert.Equal(t, "dean@campus.edu", admins[0].Email)
	assert.True(t, utils.CheckPasswordHash("s3cret!", admins[0].Password))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
