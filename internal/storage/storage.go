package storage

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateSlug = errors.New("slug already exists")
	ErrLinkNotFound  = errors.New("navigation link not found")
)

var (
	ErrPathViolation = errors.New("path escapes uploads root")
	ErrFileNotFound  = errors.New("file not found")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)
