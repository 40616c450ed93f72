package repo

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes repository failures.
type ErrorCode string

const (
	// ErrCodeNoRepository indicates an operation addressed a kind with no
	// registry bucket. This is a setup/ordering bug: a store was used
	// before any bucket was created for its kind.
	ErrCodeNoRepository ErrorCode = "NO_REPOSITORY"

	// ErrCodeNotFound indicates a requested or removed id is absent from
	// the bucket.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Error is a recoverable repository failure. It carries the offending
// kind identifier and, for not-found failures, the offending id.
type Error struct {
	// Code identifies the failure kind.
	Code ErrorCode

	// Kind is the identifier of the addressed kind.
	Kind string

	// ID is the offending object id (not-found failures only).
	ID ID
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNoRepository:
		return fmt.Sprintf("%s: no repository for %s has been found", e.Code, e.Kind)
	case ErrCodeNotFound:
		return fmt.Sprintf("%s: id %q in %s hasn't been found", e.Code, string(e.ID), e.Kind)
	default:
		return fmt.Sprintf("%s: kind=%s id=%s", e.Code, e.Kind, e.ID)
	}
}

// NewNoRepository creates an Error for a missing registry bucket.
func NewNoRepository(kind string) *Error {
	return &Error{Code: ErrCodeNoRepository, Kind: kind}
}

// NewNotFound creates an Error for a missing id.
func NewNotFound(kind string, id ID) *Error {
	return &Error{Code: ErrCodeNotFound, Kind: kind, ID: id}
}

// IsNoRepository returns true if the error is a missing-bucket failure.
// Uses errors.As to handle wrapped errors.
func IsNoRepository(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == ErrCodeNoRepository
	}
	return false
}

// IsNotFound returns true if the error is a missing-id failure.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == ErrCodeNotFound
	}
	return false
}

// ConflictError reports an id collision across the kind hierarchy: during
// insert fan-out the id was already present in an ancestor bucket. This is
// an internal-consistency violation, not a recoverable failure, so the
// store raises it as a panic rather than returning it. BatchUpdate recovers
// it per item via Guard; everything else lets it propagate.
type ConflictError struct {
	// Kind is the inserting kind.
	Kind string

	// Ancestor is the ancestor kind whose bucket already held the id.
	Ancestor string

	// ID is the colliding object id.
	ID ID
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("id conflict in super repos: id %q of %s already present in %s",
		string(e.ID), e.Kind, e.Ancestor)
}

// IsConflict returns true if the error is an identity-conflict violation.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
