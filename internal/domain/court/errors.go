package court

import "errors"

var (
	ErrNotFound     = errors.New("court not found")
	ErrInUse        = errors.New("court has bookings")
	ErrUnitNotFound = errors.New("unit not found")
)
