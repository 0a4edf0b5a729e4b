package domain

import "errors"

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credential")
	ErrEmailTaken         = errors.New("email already taken")
	ErrRateLimited        = errors.New("too many login attempts")
)

// Post errors
var (
	ErrPostNotFound = errors.New("post not found")
)
