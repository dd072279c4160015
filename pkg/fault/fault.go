// Package fault defines the error taxonomy shared by the form engine:
// validation failures surface inline and are recoverable, storage failures
// abandon the operation, and not-found lookups render a missing view. All
// three are classified with errors.As so wrapped causes stay inspectable.
package fault

import (
	"errors"
	"fmt"
)

// Kind partitions faults by how callers should surface them.
type Kind int

const (
	// Validation marks locally recoverable input problems: schema saves
	// missing title/description/questions, or required fill-time fields
	// left blank.
	Validation Kind = iota + 1
	// Storage marks persistence or upload failures. The operation is
	// abandoned; no automatic retry.
	Storage
	// NotFound marks lookups for forms or responses that do not exist.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Storage:
		return "storage"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Fault is an error carrying a kind, a user-facing message, and an
// optional wrapped cause.
type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("[%s] %s", f.Kind, f.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (f *Fault) Unwrap() error {
	return f.Err
}

// New creates a fault with no wrapped cause.
func New(kind Kind, message string) error {
	return &Fault{Kind: kind, Message: message}
}

// Wrap creates a fault around an underlying error.
func Wrap(kind Kind, message string, err error) error {
	return &Fault{Kind: kind, Message: message, Err: err}
}

// Validationf creates a validation fault from a format string.
func Validationf(format string, args ...any) error {
	return &Fault{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return 0, false
}

// IsValidation reports whether err is classified as a validation fault.
func IsValidation(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == Validation
}

// IsStorage reports whether err is classified as a storage fault.
func IsStorage(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == Storage
}

// IsNotFound reports whether err is classified as a not-found fault.
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == NotFound
}

// Message returns the user-facing message for a fault, or the raw error
// text when err is not a Fault.
func Message(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
