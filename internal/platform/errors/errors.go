package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBusy         = errors.New("submission already in progress")
	ErrTransport    = errors.New("transport failure")
	ErrBadResponse  = errors.New("malformed response")
)
