package apperr

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// Kind buckets every failure an operation can surface. Handlers map kinds
// to HTTP statuses; the messages travel to callers as a plain string list.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindIntegrity
	KindUnexpected
)

type Error struct {
	Kind     Kind
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "operation failed"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(messages ...string) *Error {
	return &Error{Kind: KindValidation, Messages: messages}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Messages: []string{message}}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Messages: []string{message}}
}

func Integrity(err error) *Error {
	return &Error{Kind: KindIntegrity, Messages: []string{"integrity error - " + err.Error()}, Err: err}
}

func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Messages: []string{err.Error()}, Err: err}
}

// Classify folds an arbitrary persistence error into the taxonomy. GORM's
// translated sentinels carry the store-level constraint outcomes: a duplicate
// key on the lower(email) unique index is the final guard behind the advisory
// uniqueness pre-check.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("Email already exists.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("record not found")
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return Integrity(err)
	default:
		return Unexpected(err)
	}
}

// Messages extracts the caller-facing error list from any error.
func Messages(err error) []string {
	if err == nil {
		return []string{}
	}
	var appErr *Error
	if errors.As(err, &appErr) && len(appErr.Messages) > 0 {
		return appErr.Messages
	}
	return []string{err.Error()}
}

// HTTPStatus maps an error to the transport status while the body keeps the
// uniform {result, errors[]} envelope.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindIntegrity:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
