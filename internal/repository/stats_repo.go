package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelnest/internal/domain"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type GuestStats struct {
	TotalBookings     int64 `json:"total_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
	CompletedBookings int64 `json:"completed_bookings"`
	CancelledBookings int64 `json:"cancelled_bookings"`
	TotalReviewsGiven int64 `json:"total_reviews_given"`
}

type HostStats struct {
	TotalListings             int64   `json:"total_listings"`
	ActiveListings            int64   `json:"active_listings"`
	TotalBookingsReceived     int64   `json:"total_bookings_received"`
	ConfirmedBookingsReceived int64   `json:"confirmed_bookings_received"`
	TotalReviewsReceived      int64   `json:"total_reviews_received"`
	AverageRating             float64 `json:"average_rating"`
}

func (r *StatsRepository) GuestStats(ctx context.Context, userID uuid.UUID) (*GuestStats, error) {
	var s GuestStats
	base := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("guest_id = ?", userID)

	if err := base.Session(&gorm.Session{}).Count(&s.TotalBookings).Error; err != nil {
		return nil, err
	}
	counts := map[domain.BookingStatus]*int64{
		domain.BookingConfirmed: &s.ConfirmedBookings,
		domain.BookingCompleted: &s.CompletedBookings,
		domain.BookingCancelled: &s.CancelledBookings,
	}
	for status, dst := range counts {
		if err := base.Session(&gorm.Session{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	if err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("guest_id = ?", userID).
		Count(&s.TotalReviewsGiven).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StatsRepository) HostStats(ctx context.Context, userID uuid.UUID) (*HostStats, error) {
	var s HostStats

	listings := r.db.WithContext(ctx).Model(&domain.Listing{}).Where("host_id = ?", userID)
	if err := listings.Session(&gorm.Session{}).Count(&s.TotalListings).Error; err != nil {
		return nil, err
	}
	if err := listings.Session(&gorm.Session{}).Where("available = ?", true).Count(&s.ActiveListings).Error; err != nil {
		return nil, err
	}

	bookings := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Joins("JOIN listings ON listings.id = bookings.listing_id").
		Where("listings.host_id = ?", userID)
	if err := bookings.Session(&gorm.Session{}).Count(&s.TotalBookingsReceived).Error; err != nil {
		return nil, err
	}
	if err := bookings.Session(&gorm.Session{}).
		Where("bookings.status = ?", domain.BookingConfirmed).
		Count(&s.ConfirmedBookingsReceived).Error; err != nil {
		return nil, err
	}

	reviews := r.db.WithContext(ctx).Model(&domain.Review{}).
		Joins("JOIN listings ON listings.id = reviews.listing_id").
		Where("listings.host_id = ?", userID)
	if err := reviews.Session(&gorm.Session{}).Count(&s.TotalReviewsReceived).Error; err != nil {
		return nil, err
	}

	var avg *float64
	if err := reviews.Session(&gorm.Session{}).
		Select("AVG(reviews.rating)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		s.AverageRating = *avg
	}
	return &s, nil
}
