package service

import "errors"

var (
	// ErrNoFieldsToUpdate is returned when an update request supplies none
	// of the updatable fields.
	ErrNoFieldsToUpdate = errors.New("at least one of name, email or password must be supplied")

	// ErrEmptyField is returned when an update request supplies a field
	// with an empty value. None of the user fields may be cleared.
	ErrEmptyField = errors.New("supplied fields must not be empty")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are deliberately
	// indistinguishable to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
