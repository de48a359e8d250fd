package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidTier      = errors.New("tier must be one of A, B, C")
	ErrUnauthorized     = errors.New("unauthorized to access this employee")
)
