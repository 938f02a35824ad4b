package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure. Each kind maps to exactly one HTTP
// status at the transport edge.
type ErrorKind string

const (
	// KindNotFound means a referenced entity id did not resolve.
	KindNotFound ErrorKind = "not_found"
	// KindInvalid means a supplied value violates a type-dependent or
	// bounds rule.
	KindInvalid ErrorKind = "invalid"
	// KindConflict means a uniqueness rule was violated.
	KindConflict ErrorKind = "conflict"
	// KindStorage means the underlying repository failed; the cause is
	// opaque to callers.
	KindStorage ErrorKind = "storage_failure"
)

// Error is the domain error type carried from validation and repository
// layers to the transport edge.
type Error struct {
	Kind   ErrorKind
	Entity string
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// NotFoundf reports that an entity of the named kind does not exist.
func NotFoundf(entity, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Detail: fmt.Sprintf(format, args...)}
}

// Invalidf reports a value that violates a validation rule.
func Invalidf(entity, format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Entity: entity, Detail: fmt.Sprintf(format, args...)}
}

// Conflictf reports a uniqueness violation.
func Conflictf(entity, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Detail: fmt.Sprintf(format, args...)}
}

// StorageFailure wraps an opaque repository error.
func StorageFailure(entity string, cause error) *Error {
	return &Error{Kind: KindStorage, Entity: entity, Detail: "storage operation failed", cause: cause}
}

// KindOf extracts the domain error kind, defaulting to KindStorage for
// errors that did not originate in the domain.
func KindOf(err error) ErrorKind {
	var domErr *Error
	if errors.As(err, &domErr) {
		return domErr.Kind
	}
	return KindStorage
}

// IsNotFound reports whether err is a domain NotFound error.
func IsNotFound(err error) bool {
	var domErr *Error
	return errors.As(err, &domErr) && domErr.Kind == KindNotFound
}
