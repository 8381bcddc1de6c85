package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBlockList_CaseInsensitive(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Blocks.Block(f.ctx, f.mod, "Alice"))

	for _, name := range []string{"alice", "ALICE", " Alice "} {
		blocked, err := f.svc.Blocks.IsBlocked(f.ctx, name)
		require.NoError(t, err)
		assert.True(t, blocked, name)
	}

	blocked, err := f.svc.Blocks.IsBlocked(f.ctx, "Alicia")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestBlockList_BlankNeverBlocked(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Blocks.Block(f.ctx, f.mod, "   "))

	for _, name := range []string{"", "  "} {
		blocked, err := f.svc.Blocks.IsBlocked(f.ctx, name)
		require.NoError(t, err)
		assert.False(t, blocked)
	}

	entries, err := f.svc.Blocks.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBlockList_OneEntryPerFoldedName(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Blocks.Block(f.ctx, f.mod, "Alice"))
	require.NoError(t, f.svc.Blocks.Block(f.ctx, f.mod, "ALICE"))
	require.NoError(t, f.svc.Blocks.Block(f.ctx, f.super, "alice"))

	entries, err := f.svc.Blocks.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice", entries[0].Name)
}

func TestBlockList_RequiresModerator(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.svc.Blocks.Block(f.ctx, f.anon, "Alice"), ErrAuthorization)
	assert.ErrorIs(t, f.svc.Blocks.Block(f.ctx, nil, "Alice"), ErrAuthorization)

	blocked, err := f.svc.Blocks.IsBlocked(f.ctx, "alice")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestBlockList_Unblock(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Blocks.Block(f.ctx, f.mod, "Alice"))
	blocked, err := f.svc.Blocks.IsBlocked(f.ctx, "alice")
	require.NoError(t, err)
	require.True(t, blocked)

	assert.ErrorIs(t, f.svc.Blocks.Unblock(f.ctx, f.anon, "alice"), ErrAuthorization)
	require.NoError(t, f.svc.Blocks.Unblock(f.ctx, f.mod, "aLiCe"))

	blocked, err = f.svc.Blocks.IsBlocked(f.ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestBlockList_SeenByOtherInstances(t *testing.T) {
	f := newFixture(t)
	other := NewBlockList(f.db, zap.NewNop())

	blocked, err := f.svc.Blocks.IsBlocked(f.ctx, "alice")
	require.NoError(t, err)
	require.False(t, blocked)

	require.NoError(t, other.Block(f.ctx, f.mod, "Alice"))

	blocked, err = f.svc.Blocks.IsBlocked(f.ctx, "alice")
	require.NoError(t, err)
	assert.True(t, blocked)

	_, err = f.svc.Comments.Add(f.ctx, f.anon, f.post(t, "Notice").ID, "ALICE", "hello")
	assert.ErrorIs(t, err, ErrBlockedAuthor)

	require.NoError(t, other.Unblock(f.ctx, f.mod, "alice"))
	blocked, err = f.svc.Blocks.IsBlocked(f.ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, blocked)
}
