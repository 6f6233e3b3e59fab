package unit

import "errors"

var (
	ErrNotFound = errors.New("unit not found")
	ErrInUse    = errors.New("unit has courts")
)
