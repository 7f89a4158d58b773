package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"travelnest/internal/database"
	"travelnest/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedListing(t *testing.T, db *gorm.DB) *domain.Listing {
	t.Helper()

	host := &domain.User{Email: uuid.NewString() + "@example.com", PasswordHash: "x", Name: "Host"}
	require.NoError(t, db.Create(host).Error)

	l := &domain.Listing{
		HostID:        host.ID,
		Title:         "Lakeside Cabin",
		Location:      "Bahir Dar",
		PricePerNight: decimal.RequireFromString("100.00"),
		PropertyType:  domain.PropertyCabin,
		MaxGuests:     4,
		Available:     true,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBooking(l *domain.Listing, in, out time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ListingID:      l.ID,
		GuestID:        uuid.New(),
		CheckIn:        in,
		CheckOut:       out,
		NumberOfGuests: 2,
		TotalPrice:     decimal.RequireFromString("200.00"),
		Status:         status,
	}
}

func TestBookingRepository_CreateAdmitted_RejectsOverlap(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	l := seedListing(t, db)
	ctx := context.Background()

	first := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingPending)
	require.NoError(t, repo.CreateAdmitted(ctx, first))

	second := newBooking(l, date(2026, 1, 11), date(2026, 1, 13), domain.BookingPending)
	assert.ErrorIs(t, repo.CreateAdmitted(ctx, second), ErrDateOverlap)
}

func TestBookingRepository_CreateAdmitted_BackToBackWindows(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	l := seedListing(t, db)
	ctx := context.Background()

	first := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingPending)
	require.NoError(t, repo.CreateAdmitted(ctx, first))

	// Half-open windows: checkout day is free for the next check-in.
	second := newBooking(l, date(2026, 1, 12), date(2026, 1, 14), domain.BookingPending)
	assert.NoError(t, repo.CreateAdmitted(ctx, second))
}

func TestBookingRepository_CreateAdmitted_CancelledDoesNotBlock(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	l := seedListing(t, db)
	ctx := context.Background()

	cancelled := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingCancelled)
	require.NoError(t, db.Create(cancelled).Error)

	b := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingPending)
	assert.NoError(t, repo.CreateAdmitted(ctx, b))
}

func TestBookingRepository_CreateAdmitted_ContainedWindowRejected(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	l := seedListing(t, db)
	ctx := context.Background()

	outer := newBooking(l, date(2026, 1, 10), date(2026, 1, 20), domain.BookingConfirmed)
	require.NoError(t, repo.CreateAdmitted(ctx, outer))

	inner := newBooking(l, date(2026, 1, 12), date(2026, 1, 14), domain.BookingPending)
	assert.ErrorIs(t, repo.CreateAdmitted(ctx, inner), ErrDateOverlap)
}

func TestBookingRepository_CreateAdmitted_MissingListing(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := &domain.Booking{
		ListingID:      uuid.New(),
		GuestID:        uuid.New(),
		CheckIn:        date(2026, 1, 10),
		CheckOut:       date(2026, 1, 12),
		NumberOfGuests: 1,
		TotalPrice:     decimal.RequireFromString("100.00"),
		Status:         domain.BookingPending,
	}
	assert.ErrorIs(t, repo.CreateAdmitted(ctx, b), ErrNotFound)
}

func TestBookingRepository_CountOverlapping_TouchingEdgesDoNotCount(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	l := seedListing(t, db)
	ctx := context.Background()

	b := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingConfirmed)
	require.NoError(t, db.Create(b).Error)

	before, err := repo.CountOverlapping(ctx, l.ID, date(2026, 1, 8), date(2026, 1, 10))
	require.NoError(t, err)
	assert.Zero(t, before)

	after, err := repo.CountOverlapping(ctx, l.ID, date(2026, 1, 12), date(2026, 1, 15))
	require.NoError(t, err)
	assert.Zero(t, after)

	inside, err := repo.CountOverlapping(ctx, l.ID, date(2026, 1, 11), date(2026, 1, 12))
	require.NoError(t, err)
	assert.EqualValues(t, 1, inside)
}

func TestBookingRepository_UpdateStatusFrom_Guarded(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	l := seedListing(t, db)
	ctx := context.Background()

	b := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingPending)
	require.NoError(t, db.Create(b).Error)

	require.NoError(t, repo.UpdateStatusFrom(ctx, b.ID, domain.BookingPending, domain.BookingCancelled))

	// Second writer raced on the same edge and finds the guard unmet.
	assert.ErrorIs(t,
		repo.UpdateStatusFrom(ctx, b.ID, domain.BookingPending, domain.BookingConfirmed),
		ErrNotFound)
}

func TestBookingRepository_ConfirmFromPayment_OnlyFromPending(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	l := seedListing(t, db)
	ctx := context.Background()

	b := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingPending)
	require.NoError(t, db.Create(b).Error)

	changed, err := repo.ConfirmFromPayment(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.ConfirmFromPayment(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
}
