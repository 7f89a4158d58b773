package review

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"travelnest/internal/domain"
	"travelnest/internal/platform/logger"
	"travelnest/internal/repository"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingReader
	log      logger.Logger
}

func NewService(reviews ReviewRepository, bookings BookingReader, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{reviews: reviews, bookings: bookings, log: log}
}

// Create runs the eligibility checks and records the review. A review is tied
// to one completed stay: the booking must exist, belong to the requester, and
// be completed, and no review for it may exist yet. The listing is taken from
// the booking, never from the request.
func (s *Service) Create(ctx context.Context, guestID uuid.UUID, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.GuestID != guestID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotCompleted
	}

	exists, err := s.reviews.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	bookingID := b.ID
	rv := &domain.Review{
		ListingID: b.ListingID,
		GuestID:   guestID,
		BookingID: &bookingID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		// The unique index backs up the existence check under races.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	s.log.Infof("review created listing=%s booking=%s rating=%d", rv.ListingID, b.ID, rv.Rating)
	return rv, nil
}

// ListForListing returns a listing's reviews, newest first.
func (s *Service) ListForListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	return s.reviews.ListByListing(ctx, listingID, limit, offset)
}

// ListForGuest returns the reviews the requester has written.
func (s *Service) ListForGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Review, error) {
	return s.reviews.ListByGuest(ctx, guestID)
}
