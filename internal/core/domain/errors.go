package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password at login.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrUnauthorized covers every reason a bearer token is rejected.
	ErrUnauthorized = errors.New("could not validate credentials")
	ErrForbidden    = errors.New("access denied")
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrComponentNotFound = errors.New("component not found")
	ErrComponentExists   = errors.New("component already exists")
	ErrNoFieldsToUpdate  = errors.New("no valid fields to update")
)
