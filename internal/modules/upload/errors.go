package upload

import "errors"

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrNotOwner        = errors.New("upload belongs to another user")
	ErrNotFound        = errors.New("upload not found")
)
