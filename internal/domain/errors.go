package domain

import "errors"

// Error taxonomy shared by all core operations. Services wrap these with
// fmt.Errorf("%w: detail", ...) and the HTTP boundary maps them to status
// codes with errors.Is.
var (
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)
