package utils

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for any failed credential or session check.
// It deliberately carries no detail, so callers cannot distinguish a wrong
// password from an unknown user.
var ErrUnauthorized = errors.New("Unauthorized")

// ValidationError reports a field-level constraint violation on a write.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ReferentialError reports a write that references a parent row which does
// not exist.
type ReferentialError struct {
	Entity string
	Field  string
	ID     uint
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s with id %d referenced by %s does not exist", e.Entity, e.ID, e.Field)
}

// NewReferentialError creates a ReferentialError for the given parent entity.
func NewReferentialError(entity, field string, id uint) error {
	return &ReferentialError{Entity: entity, Field: field, ID: id}
}

// StorageError wraps a failure of the underlying persistence engine. The
// cascade closure is transactional, so a StorageError never leaves partial
// state behind and is safe to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the operation it failed in.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// NotFoundError reports a read for a row that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given entity.
func NewNotFoundError(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}
