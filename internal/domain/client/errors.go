package client

import "errors"

var (
	ErrNotFound = errors.New("client not found")
	ErrInUse    = errors.New("client has bookings")
)
