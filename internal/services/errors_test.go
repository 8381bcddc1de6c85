package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := validationError("Name and comment cannot be empty.")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrAuthorization))
	assert.Equal(t, "Name and comment cannot be empty.", err.Error())

	wrapped := fmt.Errorf("submit: %w", err)
	assert.True(t, errors.Is(wrapped, ErrValidation))

	var se *Error
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, KindValidation, se.Kind)
}

func TestNotFoundOr(t *testing.T) {
	err := notFoundOr(gorm.ErrRecordNotFound, "Comment")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Comment not found.", err.Error())

	boom := errors.New("disk on fire")
	err = notFoundOr(boom, "Comment")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}
