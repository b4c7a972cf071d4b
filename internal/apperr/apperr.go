// Package apperr carries structured failure results between the
// service layer and the HTTP handlers. Every mutation failure is one
// of four kinds so callers always get an error kind plus a
// human-readable message instead of a raw fault.
package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindValidation  Kind = "validation_error"
	KindNotFound    Kind = "not_found"
	KindConstraint  Kind = "constraint_error"
	KindPersistence Kind = "persistence_error"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error  { return New(KindValidation, message) }
func NotFound(message string) *Error    { return New(KindNotFound, message) }
func Constraint(message string) *Error  { return New(KindConstraint, message) }
func Persistence(message string) *Error { return New(KindPersistence, message) }

// KindOf returns the kind of err, defaulting to persistence for
// anything that isn't a structured Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// MessageOf returns the human-readable message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// FromDB translates a store error into a structured Error. Missing
// rows become not_found for the named entity, foreign-key and
// uniqueness violations become constraint errors, everything else is
// a persistence error.
func FromDB(err error, entity string) *Error {
	if errors.Is(err, sql.ErrNoRows) {
		return New(KindNotFound, entity+" not found")
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "foreign key") || strings.Contains(msg, "constraint") || strings.Contains(msg, "violates") {
		return Wrap(KindConstraint, entity+" violates a data constraint", err)
	}
	return Wrap(KindPersistence, "could not access "+entity+" storage", err)
}
