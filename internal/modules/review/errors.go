package review

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrForbidden           = errors.New("booking does not belong to the requester")
	ErrBookingNotCompleted = errors.New("only completed stays can be reviewed")
	ErrAlreadyReviewed     = errors.New("a review for this booking already exists")
)
