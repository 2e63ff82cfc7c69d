package user

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
	ErrForbidden  = errors.New("not allowed")
)
