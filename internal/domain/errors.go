package domain

import (
	"errors"
	"fmt"
)

// Kind tags the error families surfaced by the core.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// ValidationError rejects input before any I/O happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NotFoundError names the entity kind and the id that was looked up.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %v not found", e.Entity, e.ID)
}

// DatabaseError wraps a store failure; Cause is preserved for diagnostics.
type DatabaseError struct {
	Op    string
	Cause error
}

func (e *DatabaseError) Error() string {
	if e.Cause == nil {
		return e.Op
	}
	return e.Op + ": " + e.Cause.Error()
}

func (e *DatabaseError) Unwrap() error { return e.Cause }

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// DBError wraps err as a DatabaseError unless it is nil or already classified.
func DBError(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindUnknown {
		return err
	}
	return &DatabaseError{Op: op, Cause: err}
}

// KindOf classifies err by the first tagged error in its chain.
func KindOf(err error) Kind {
	var ve *ValidationError
	var nf *NotFoundError
	var de *DatabaseError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &nf):
		return KindNotFound
	case errors.As(err, &de):
		return KindDatabase
	default:
		return KindUnknown
	}
}
