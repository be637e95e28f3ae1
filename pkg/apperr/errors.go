// Package apperr carries the error taxonomy shared by all services:
// not-found, business-validation and data-access failures. Handlers map
// these to 404, 400 and 500; anything else is an internal error.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a requested entity does not exist.
type NotFoundError struct {
	Entity   string
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s was not found in %s", e.Entity, e.Location)
}

// BusinessValidationError signals a well-formed request that violates a
// domain rule.
type BusinessValidationError struct {
	Value    string
	Location string
}

func (e *BusinessValidationError) Error() string {
	return fmt.Sprintf("%s does not meet business validations (%s)", e.Value, e.Location)
}

// DataAccessError wraps a failure at the storage boundary. The original
// cause is kept for logging but never shown to callers.
type DataAccessError struct {
	Location string
	Err      error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access error in %s", e.Location)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

func NewNotFound(entity, location string) error {
	return &NotFoundError{Entity: entity, Location: location}
}

func NewBusinessValidation(value, location string) error {
	return &BusinessValidationError{Value: value, Location: location}
}

func NewDataAccess(location string, err error) error {
	return &DataAccessError{Location: location, Err: err}
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsBusinessValidation(err error) bool {
	var e *BusinessValidationError
	return errors.As(err, &e)
}

func IsDataAccess(err error) bool {
	var e *DataAccessError
	return errors.As(err, &e)
}
