package offer

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("offer not found")
	ErrForbidden  = errors.New("not allowed")
	ErrConflict   = errors.New("offer already resolved")
)
