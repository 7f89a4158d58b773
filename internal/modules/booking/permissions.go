package booking

import (
	"github.com/google/uuid"

	"travelnest/internal/domain"
)

// DecideTransition is the capability check for booking status changes: a pure
// function of the actor, the booking, and the requested target. Terminal-state
// and illegal-edge violations map to ErrInvalidTransition; an actor asking for
// a target outside their allowed set gets ErrForbidden.
func DecideTransition(actorID uuid.UUID, b *domain.Booking, target domain.BookingStatus) error {
	if b.Status.Terminal() {
		return ErrInvalidTransition
	}

	isHost := b.Listing != nil && actorID == b.Listing.HostID
	isGuest := actorID == b.GuestID

	switch {
	case isHost:
		if target != domain.BookingConfirmed && target != domain.BookingCancelled && target != domain.BookingCompleted {
			return ErrForbidden
		}
	case isGuest:
		// Guests may only cancel their own booking.
		if target != domain.BookingCancelled {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}

	if !legalEdge(b.Status, target) {
		return ErrInvalidTransition
	}
	return nil
}

func legalEdge(from, to domain.BookingStatus) bool {
	switch from {
	case domain.BookingPending:
		return to == domain.BookingConfirmed || to == domain.BookingCancelled
	case domain.BookingConfirmed:
		return to == domain.BookingCancelled || to == domain.BookingCompleted
	}
	return false
}
