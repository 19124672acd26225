package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Stable wire-level error codes. These are part of the external
// contract and must not change.
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateEntry     = "DUPLICATE_ENTRY"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeConstraintError    = "CONSTRAINT_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Postgres error codes handled by the global translation point.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationError, message, http.StatusBadRequest, details)
}

func NewNotFound(message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return NewDomainError(CodeNotFound, message, http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewTokenExpired() error {
	return NewDomainError(CodeTokenExpired, "Token has expired", http.StatusForbidden, nil)
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized, nil)
}

func NewDuplicateEntry(message string) error {
	if message == "" {
		message = "Email already exists"
	}
	return NewDomainError(CodeDuplicateEntry, message, http.StatusConflict, nil)
}

func NewConstraintError() error {
	return NewDomainError(CodeConstraintError, "Database constraint violation", http.StatusBadRequest, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts arbitrary errors to a DomainError. Store-level
// failures funnel through here once, at the response boundary: row
// absence maps to NOT_FOUND, unique violations to DUPLICATE_ENTRY,
// foreign key violations to CONSTRAINT_ERROR, anything unrecognized to
// INTERNAL_ERROR.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("").(*DomainError)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return NewDuplicateEntry("").(*DomainError)
		case pgForeignKeyViolation:
			return NewConstraintError().(*DomainError)
		}
	}

	return NewInternalError(err).(*DomainError)
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}

// IsUniqueViolation reports whether err is a unique constraint
// violation from the store. Used by the signup check-then-insert
// sequence to resolve its benign race.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
