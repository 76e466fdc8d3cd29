package session

import "errors"

// Validation failures returned by Manager operations.
var (
	ErrEmptyField         = errors.New("session: required field is empty")
	ErrInvalidEmail       = errors.New("session: invalid email")
	ErrPasswordMismatch   = errors.New("session: passwords do not match")
	ErrUsernameTaken      = errors.New("session: username already exists")
	ErrEmailTaken         = errors.New("session: email already registered")
	ErrInvalidCredentials = errors.New("session: invalid username or password")
	ErrEmailUnknown       = errors.New("session: email not registered")
	ErrNoPendingCode      = errors.New("session: no recovery code issued")
	ErrCodeMismatch       = errors.New("session: recovery code does not match")
	ErrNotVerified        = errors.New("session: recovery code not verified for this email")
	ErrNoAccount          = errors.New("session: account not found")
)
