package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarqueeService(t *testing.T) {
	f := newFixture(t)
	f.svc.Marquees.now = clock(time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC))

	_, err := f.svc.Marquees.Add(f.ctx, f.anon, "Library closes early")
	assert.ErrorIs(t, err, ErrAuthorization)
	_, err = f.svc.Marquees.Add(f.ctx, f.mod, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	first, err := f.svc.Marquees.Add(f.ctx, f.mod, "Library closes early")
	require.NoError(t, err)
	second, err := f.svc.Marquees.Add(f.ctx, f.mod, " Career fair Friday ")
	require.NoError(t, err)
	assert.Equal(t, "Career fair Friday", second.Text)

	items, err := f.svc.Marquees.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)

	assert.ErrorIs(t, f.svc.Marquees.Delete(f.ctx, f.anon, first.ID), ErrAuthorization)
	require.NoError(t, f.svc.Marquees.Delete(f.ctx, f.mod, first.ID))
	assert.ErrorIs(t, f.svc.Marquees.Delete(f.ctx, f.mod, first.ID), ErrNotFound)

	items, err = f.svc.Marquees.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAdminUpdateService(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AdminUpdates.Add(f.ctx, f.mod, "Budget meeting moved")
	assert.ErrorIs(t, err, ErrAuthorization)
	_, err = f.svc.AdminUpdates.Add(f.ctx, f.super, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	update, err := f.svc.AdminUpdates.Add(f.ctx, f.super, "Budget meeting moved")
	require.NoError(t, err)
	assert.Equal(t, "Portal Admin", update.Author)

	_, err = f.svc.AdminUpdates.List(f.ctx, f.anon)
	assert.ErrorIs(t, err, ErrAuthorization)
	updates, err := f.svc.AdminUpdates.List(f.ctx, f.mod)
	require.NoError(t, err)
	require.Len(t, updates, 1)

	assert.ErrorIs(t, f.svc.AdminUpdates.Delete(f.ctx, f.mod, update.ID), ErrAuthorization)
	require.NoError(t, f.svc.AdminUpdates.Delete(f.ctx, f.super, update.ID))
	assert.ErrorIs(t, f.svc.AdminUpdates.Delete(f.ctx, f.super, update.ID), ErrNotFound)
}
