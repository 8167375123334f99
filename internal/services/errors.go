package services

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden access")
	ErrInvalidToken    = errors.New("invalid token")
	ErrNotFound        = errors.New("not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrBadRequest      = errors.New("bad request")
	ErrStorageDisabled = errors.New("object storage is not configured")
)
