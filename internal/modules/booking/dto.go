package booking

import "github.com/google/uuid"

type AdmitBookingRequest struct {
	ListingID      uuid.UUID `json:"listing_id" binding:"required"`
	GuestID        uuid.UUID `json:"-"`
	CheckIn        string    `json:"check_in" binding:"required"`
	CheckOut       string    `json:"check_out" binding:"required"`
	NumberOfGuests int       `json:"number_of_guests" binding:"required"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}
