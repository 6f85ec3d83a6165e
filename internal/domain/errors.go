package domain

import "errors"

var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrMissingServiceFields = errors.New("name, price, and description are required")
	ErrInvalidOrder         = errors.New("ordered ids must be a permutation of all current services")
)
