package booking

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrListingNotFound    = errors.New("listing not found")
	ErrListingUnavailable = errors.New("listing is not open for booking")
	ErrCapacityExceeded   = errors.New("guest count exceeds listing capacity")
	ErrDateConflict       = errors.New("dates conflict with an existing booking")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrForbidden          = errors.New("actor is not allowed to perform this transition")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
