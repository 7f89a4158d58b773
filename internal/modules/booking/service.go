package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"travelnest/internal/domain"
	"travelnest/internal/platform/logger"
	"travelnest/internal/repository"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings BookingRepository
	listings ListingReader
	log      logger.Logger
}

func NewService(bookings BookingRepository, listings ListingReader, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{bookings: bookings, listings: listings, log: log}
}

// Admit validates a booking request and, if the window is free, creates the
// booking in pending status. Preconditions are checked in a fixed order and the
// first failure wins; the overlap check and the insert run atomically against
// concurrent admissions on the same listing.
func (s *Service) Admit(ctx context.Context, req AdmitBookingRequest) (*domain.Booking, error) {
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return nil, ErrValidation
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return nil, ErrValidation
	}

	if !checkOut.After(checkIn) {
		return nil, ErrValidation
	}
	if checkIn.Before(today()) {
		return nil, ErrValidation
	}
	if req.NumberOfGuests < 1 {
		return nil, ErrValidation
	}

	listing, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !listing.Available {
		return nil, ErrListingUnavailable
	}
	if req.NumberOfGuests > listing.MaxGuests {
		return nil, ErrCapacityExceeded
	}

	nights := int64(checkOut.Sub(checkIn).Hours() / 24)
	total := listing.PricePerNight.Mul(decimal.NewFromInt(nights))

	b := &domain.Booking{
		ListingID:      req.ListingID,
		GuestID:        req.GuestID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
		TotalPrice:     total,
		Status:         domain.BookingPending,
	}

	if err := s.bookings.CreateAdmitted(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrDateOverlap):
			return nil, ErrDateConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrListingNotFound
		default:
			return nil, err
		}
	}

	s.log.Infof("booking admitted id=%s listing=%s nights=%d total=%s", b.ID, b.ListingID, nights, total)
	return b, nil
}

// IsAvailable answers whether the listing is free for the half-open window.
// Read-only; admission re-checks under the listing lock before writing.
func (s *Service) IsAvailable(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, ErrValidation
	}
	cnt, err := s.bookings.CountOverlapping(ctx, listingID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

// Transition applies an actor-requested status change. Role and state legality
// are decided by DecideTransition; the guarded update makes racing transitions
// collapse to one effective write.
func (s *Service) Transition(ctx context.Context, bookingID, actorID uuid.UUID, target domain.BookingStatus) (*domain.Booking, error) {
	switch target {
	case domain.BookingPending:
		return nil, ErrInvalidTransition
	case domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
	default:
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := DecideTransition(actorID, b, target); err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatusFrom(ctx, bookingID, b.Status, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Someone moved the booking between our read and the write.
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	s.log.Infof("booking transition id=%s from=%s to=%s actor=%s", bookingID, b.Status, target, actorID)
	b.Status = target
	return b, nil
}

// GetForActor returns the booking to its guest or the listing's host only.
func (s *Service) GetForActor(ctx context.Context, bookingID, actorID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if actorID != b.GuestID && (b.Listing == nil || actorID != b.Listing.HostID) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListForGuest(ctx context.Context, guestID uuid.UUID, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByGuest(ctx, guestID, status, limit, offset)
}

func (s *Service) ListForHost(ctx context.Context, hostID uuid.UUID, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByHost(ctx, hostID, status, limit, offset)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
