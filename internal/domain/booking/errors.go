package booking

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrInvalidDateTime  = errors.New("invalid booking date-time")
	ErrClientNotFound   = errors.New("client not found")
	ErrCourtNotFound    = errors.New("court not found")
	ErrCourtUnavailable = errors.New("court not available")
	ErrSlotTaken        = errors.New("court already booked at this time")
)
