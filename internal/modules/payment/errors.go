package payment

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrForbidden        = errors.New("payment does not belong to the requester")
	ErrAlreadyPaid      = errors.New("a payment for this booking is already completed or in progress")
	ErrGateway          = errors.New("payment gateway request failed")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrValidation       = errors.New("validation error")
)
