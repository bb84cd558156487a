package models

import "errors"

// Sentinel errors the auth service returns. Controllers map these to
// HTTP status codes; anything else is treated as an internal failure
// and never leaks its message to the client.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("password does not match")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNoToken            = errors.New("no token provided")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrInvalidRole        = errors.New("invalid role")
)
