package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"travelnest/internal/domain"
)

type BookingRepository interface {
	CreateAdmitted(ctx context.Context, b *domain.Booking) error
	CountOverlapping(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) error
	ListByGuest(ctx context.Context, guestID uuid.UUID, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostID uuid.UUID, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
}

type ListingReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
}
