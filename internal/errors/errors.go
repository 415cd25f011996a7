package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds. Concrete errors are marked with one of these and matched with errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrVersionConflict  = errors.New("version conflict")
	ErrDatabase         = errors.New("database error")
	ErrDuplicateRule    = errors.New("duplicate rule")
	ErrRuleNotFound     = errors.New("rule not found")
	ErrNoDefaultProfile = errors.New("no default tax profile")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidRule      = errors.New("invalid rule")
)

// ErrorBuilder accumulates a cause, a user facing hint and reportable details
// before producing the final error.
type ErrorBuilder struct {
	err     error
	hint    string
	details map[string]interface{}
}

// NewError starts a builder from a message.
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// NewErrorf starts a builder from a formatted message.
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return &ErrorBuilder{err: errors.Newf(format, args...)}
}

// WithError starts a builder wrapping an existing error.
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hint = hint
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.hint = fmt.Sprintf(format, args...)
	return b
}

func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.details = details
	return b
}

// Mark finishes the builder, tagging the error with the given kind.
func (b *ErrorBuilder) Mark(kind error) error {
	err := b.err
	if b.hint != "" {
		err = errors.WithHint(err, b.hint)
	}
	if len(b.details) > 0 {
		err = errors.WithDetail(err, fmt.Sprintf("%v", b.details))
	}
	return errors.Mark(err, kind)
}

// Is reports whether err carries the given kind.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}

// Hint returns the first user facing hint attached to err, or its message.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return err.Error()
}

// Details returns the reportable details attached to err.
func Details(err error) []string {
	if err == nil {
		return nil
	}
	return errors.GetAllDetails(err)
}
