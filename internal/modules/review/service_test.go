package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"travelnest/internal/domain"
	"travelnest/internal/repository"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil && args.Error(0) == nil {
		rv.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockReviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, listingID, limit, offset)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Review, error) {
	args := m.Called(ctx, guestID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func completedBooking(guestID uuid.UUID) *domain.Booking {
	return &domain.Booking{
		ID:        uuid.New(),
		ListingID: uuid.New(),
		GuestID:   guestID,
		Status:    domain.BookingCompleted,
	}
}

func TestService_Create_Success(t *testing.T) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingReader)

	guestID := uuid.New()
	b := completedBooking(guestID)
	bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	reviews.On("ExistsForBooking", mock.Anything, b.ID).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(reviews, bookings, nil)

	rv, err := service.Create(context.Background(), guestID, CreateReviewRequest{
		BookingID: b.ID,
		Rating:    5,
		Comment:   "  Great stay  ",
	})

	assert.NoError(t, err)
	// Listing comes from the booking, not the request.
	assert.Equal(t, b.ListingID, rv.ListingID)
	assert.Equal(t, "Great stay", rv.Comment)
	assert.NotNil(t, rv.BookingID)
	assert.Equal(t, b.ID, *rv.BookingID)
}

func TestService_Create_RatingOutOfRange(t *testing.T) {
	service := NewService(new(MockReviewRepository), new(MockBookingReader), nil)

	for _, rating := range []int{0, -1, 6} {
		_, err := service.Create(context.Background(), uuid.New(), CreateReviewRequest{
			BookingID: uuid.New(),
			Rating:    rating,
		})
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestService_Create_BookingNotFound(t *testing.T) {
	bookings := new(MockBookingReader)

	id := uuid.New()
	bookings.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	service := NewService(new(MockReviewRepository), bookings, nil)

	_, err := service.Create(context.Background(), uuid.New(), CreateReviewRequest{BookingID: id, Rating: 4})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Create_NotTheGuest(t *testing.T) {
	bookings := new(MockBookingReader)

	b := completedBooking(uuid.New())
	bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil)

	service := NewService(new(MockReviewRepository), bookings, nil)

	_, err := service.Create(context.Background(), uuid.New(), CreateReviewRequest{BookingID: b.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Create_BookingNotCompleted(t *testing.T) {
	bookings := new(MockBookingReader)

	guestID := uuid.New()
	for _, status := range []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled} {
		b := completedBooking(guestID)
		b.Status = status
		bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil)

		service := NewService(new(MockReviewRepository), bookings, nil)

		_, err := service.Create(context.Background(), guestID, CreateReviewRequest{BookingID: b.ID, Rating: 4})
		assert.ErrorIs(t, err, ErrBookingNotCompleted, "status %s", status)
	}
}

func TestService_Create_AlreadyReviewed(t *testing.T) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingReader)

	guestID := uuid.New()
	b := completedBooking(guestID)
	bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	reviews.On("ExistsForBooking", mock.Anything, b.ID).Return(true, nil)

	service := NewService(reviews, bookings, nil)

	_, err := service.Create(context.Background(), guestID, CreateReviewRequest{BookingID: b.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestService_Create_RacingDuplicateMapsToAlreadyReviewed(t *testing.T) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingReader)

	guestID := uuid.New()
	b := completedBooking(guestID)
	bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	reviews.On("ExistsForBooking", mock.Anything, b.ID).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	service := NewService(reviews, bookings, nil)

	_, err := service.Create(context.Background(), guestID, CreateReviewRequest{BookingID: b.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}
