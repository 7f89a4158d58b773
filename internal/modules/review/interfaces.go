package review

import (
	"context"

	"github.com/google/uuid"

	"travelnest/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Review, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Review, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}
