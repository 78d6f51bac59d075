package entity

import "errors"

// Typed outcomes shared by services and controllers. Controllers translate
// these into HTTP status codes in exactly one place; anything that is not in
// this list surfaces as a 500 with a safe message.
var (
	ErrValidation      = errors.New("invalid request")
	ErrInvalidIdentity = errors.New("invalid identity")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflict")
)
