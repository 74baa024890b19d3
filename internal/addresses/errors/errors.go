package errors

import "errors"

var (
	ErrNotFound = errors.New("address not found")

	ErrInvalidID = errors.New("invalid address ID format")
)
