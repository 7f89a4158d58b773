package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelnest/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

var blockingStatuses = []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed}

// lockForUpdate adds a row-level write lock on dialects that support it.
// SQLite serializes writers on its own, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CountOverlapping counts blocking bookings whose half-open [check_in, check_out)
// window intersects [checkIn, checkOut) on the given listing.
func (r *BookingRepository) CountOverlapping(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("listing_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			listingID, blockingStatuses, checkOut, checkIn).
		Count(&cnt).Error
	return cnt, err
}

// CreateAdmitted inserts the booking only if no blocking booking overlaps its
// window. The listing row is locked first so concurrent admissions on the same
// listing serialize; the loser re-reads the winner's row and gets ErrDateOverlap.
func (r *BookingRepository) CreateAdmitted(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := lockForUpdate(tx).First(&listing, "id = ?", b.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var cnt int64
		if err := tx.Model(&domain.Booking{}).
			Where("listing_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
				b.ListingID, blockingStatuses, b.CheckOut, b.CheckIn).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrDateOverlap
		}

		return tx.Create(b).Error
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Preload("Listing").First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// UpdateStatusFrom moves the booking from one status to another; the WHERE guard
// makes concurrent transitions collapse to at most one effective write.
func (r *BookingRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConfirmFromPayment promotes a pending booking to confirmed after a successful
// payment. A booking already cancelled or completed is left untouched.
func (r *BookingRepository) ConfirmFromPayment(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, domain.BookingPending).
		Update("status", domain.BookingConfirmed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID uuid.UUID, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("Listing").
		Where("guest_id = ?", guestID).
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var out []domain.Booking
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) ListByHost(ctx context.Context, hostID uuid.UUID, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("Listing").
		Joins("JOIN listings ON listings.id = bookings.listing_id").
		Where("listings.host_id = ?", hostID).
		Order("bookings.created_at DESC")
	if status != "" {
		q = q.Where("bookings.status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var out []domain.Booking
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
