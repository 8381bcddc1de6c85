package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldName(t *testing.T) {
	assert.Equal(t, FoldName("Alice"), FoldName("alice"))
	assert.Equal(t, FoldName("  BOB "), FoldName("bob"))
	assert.NotEqual(t, FoldName("Alice"), FoldName("Alicia"))
	assert.Empty(t, FoldName("   "))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}
