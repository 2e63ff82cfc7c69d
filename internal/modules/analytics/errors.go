package analytics

import "errors"

var ErrForbidden = errors.New("not allowed")
