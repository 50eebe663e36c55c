package services

import "errors"

// Sentinel errors for the data-access and authentication services. Callers
// classify failures with errors.Is; storage failures are wrapped with the
// underlying cause attached.
var (
	// ErrValidation indicates a missing or malformed required field. It is
	// raised before any statement reaches storage.
	ErrValidation = errors.New("missing or invalid required field")

	// ErrConstraintViolation indicates a business rule rejection, e.g.
	// lowering sanctioned vacancies below the current active headcount.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrDuplicateUsername is returned by RegisterUser when the username is
	// already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// Password change failures
	ErrPasswordMismatch = errors.New("new passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrWrongPassword    = errors.New("current password is incorrect")
)
