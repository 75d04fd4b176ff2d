package team

import "errors"

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidRole        = errors.New("unknown role")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
)
