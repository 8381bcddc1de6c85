package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindAuthorization
	KindBlockedAuthor
	KindMissingReporter
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindBlockedAuthor:
		return "blocked_author"
	case KindMissingReporter:
		return "missing_reporter_identity"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// Error is a rejected operation. Message is written for the end user and is
// shown as is; nothing was mutated when an Error is returned.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error of the same kind, so callers can test
// errors.Is(err, ErrValidation) regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrValidation              = &Error{Kind: KindValidation, Message: "invalid input"}
	ErrAuthorization           = &Error{Kind: KindAuthorization, Message: "not authorized"}
	ErrBlockedAuthor           = &Error{Kind: KindBlockedAuthor, Message: "author is blocked"}
	ErrMissingReporterIdentity = &Error{Kind: KindMissingReporter, Message: "reporter name required"}
	ErrNotFound                = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict                = &Error{Kind: KindConflict, Message: "conflict"}
)

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

// notFoundOr maps gorm's missing-row error to a user-facing NotFound and
// wraps anything else.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(KindNotFound, "%s not found.", what)
	}
	return fmt.Errorf("load %s: %w", what, err)
}
