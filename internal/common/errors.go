package common

import "errors"

// Error kinds shared by the domain packages. Domain errors wrap one of these
// so the HTTP layer can map them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)
