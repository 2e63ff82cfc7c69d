package machine

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("machine not found")
	ErrForbidden    = errors.New("not allowed")
	ErrInvalidState = errors.New("invalid machine state")
	ErrAlreadySold  = errors.New("machine already sold")
)
