package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelnest/internal/domain"
)

func TestListingRepository_Search_DateWindowExcludesBookedListings(t *testing.T) {
	db := setupDB(t)
	repo := NewListingRepository(db)
	ctx := context.Background()

	free := seedListing(t, db)
	booked := seedListing(t, db)

	b := newBooking(booked, date(2026, 1, 10), date(2026, 1, 12), domain.BookingConfirmed)
	require.NoError(t, db.Create(b).Error)

	in, out := date(2026, 1, 11), date(2026, 1, 13)
	got, err := repo.Search(ctx, SearchFilter{CheckIn: &in, CheckOut: &out})
	require.NoError(t, err)

	ids := make(map[string]bool, len(got))
	for _, l := range got {
		ids[l.ID.String()] = true
	}
	assert.True(t, ids[free.ID.String()])
	assert.False(t, ids[booked.ID.String()])
}

func TestListingRepository_Search_CancelledBookingDoesNotExclude(t *testing.T) {
	db := setupDB(t)
	repo := NewListingRepository(db)
	ctx := context.Background()

	l := seedListing(t, db)
	b := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingCancelled)
	require.NoError(t, db.Create(b).Error)

	in, out := date(2026, 1, 10), date(2026, 1, 12)
	got, err := repo.Search(ctx, SearchFilter{CheckIn: &in, CheckOut: &out})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, l.ID, got[0].ID)
}

func TestListingRepository_Search_BackToBackWindowStaysVisible(t *testing.T) {
	db := setupDB(t)
	repo := NewListingRepository(db)
	ctx := context.Background()

	l := seedListing(t, db)
	b := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingConfirmed)
	require.NoError(t, db.Create(b).Error)

	in, out := date(2026, 1, 12), date(2026, 1, 14)
	got, err := repo.Search(ctx, SearchFilter{CheckIn: &in, CheckOut: &out})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestListingRepository_Search_Filters(t *testing.T) {
	db := setupDB(t)
	repo := NewListingRepository(db)
	ctx := context.Background()

	cheap := seedListing(t, db)
	cheap.PricePerNight = decimal.RequireFromString("40.00")
	cheap.Location = "Addis Ababa"
	require.NoError(t, db.Save(cheap).Error)

	pricey := seedListing(t, db)
	pricey.PricePerNight = decimal.RequireFromString("300.00")
	pricey.Location = "Lalibela"
	require.NoError(t, db.Save(pricey).Error)

	hidden := seedListing(t, db)
	hidden.Available = false
	require.NoError(t, db.Save(hidden).Error)

	maxPrice := decimal.RequireFromString("100.00")
	got, err := repo.Search(ctx, SearchFilter{MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, cheap.ID, got[0].ID)

	got, err = repo.Search(ctx, SearchFilter{Location: "lalibela"})
	require.NoError(t, err)
	if assert.Len(t, got, 1) {
		assert.Equal(t, pricey.ID, got[0].ID)
	}
}

func TestListingRepository_Search_SortByPrice(t *testing.T) {
	db := setupDB(t)
	repo := NewListingRepository(db)
	ctx := context.Background()

	a := seedListing(t, db)
	a.PricePerNight = decimal.RequireFromString("300.00")
	require.NoError(t, db.Save(a).Error)

	b := seedListing(t, db)
	b.PricePerNight = decimal.RequireFromString("40.00")
	require.NoError(t, db.Save(b).Error)

	got, err := repo.Search(ctx, SearchFilter{SortBy: "price_low"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}
