package service

import "errors"

// Domain errors shared across services. Handlers map these onto HTTP status
// codes.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrUsernameTaken   = errors.New("username is taken")

	ErrProfileNotFound = errors.New("profile does not exist")
	ErrDeviceNotFound  = errors.New("device does not exist")
	ErrInvalidKey      = errors.New("device key is invalid")
	ErrNoProfile       = errors.New("device has no profile assigned")

	ErrNameTaken = errors.New("name is already in use")

	// ErrValidation wraps every rejected input so handlers can answer 400
	// without enumerating messages.
	ErrValidation = errors.New("invalid input")
)
