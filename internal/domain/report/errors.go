package report

import "errors"

var (
	ErrInvalidDate  = errors.New("invalid report date")
	ErrInvalidRange = errors.New("report end date before start date")
	ErrRangeTooLong = errors.New("report range too long")
)
