package errors

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrBadRequest            = errors.New("bad request")
	ErrInternal              = errors.New("internal server error")
	ErrValidation            = errors.New("validation failed")
	ErrMailDelivery          = errors.New("mail delivery failed")
	ErrInsufficientLocations = errors.New("need at least 2 locations with addresses")
)
