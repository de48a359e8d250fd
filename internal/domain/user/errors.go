package user

import "errors"

var (
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrUnknownRole             = errors.New("unknown role")
)
