package payment

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrProvider   = errors.New("payment provider error")
)
