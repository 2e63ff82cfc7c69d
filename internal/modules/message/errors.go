package message

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("message target not found")
	ErrForbidden  = errors.New("not allowed")
)
