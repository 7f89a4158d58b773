package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"travelnest/internal/domain"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// SearchFilter mirrors the public search parameters; zero values mean "not set".
type SearchFilter struct {
	Location     string
	PropertyType domain.PropertyType
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinGuests    int
	MinBedrooms  int
	CheckIn      *time.Time
	CheckOut     *time.Time
	SortBy       string // price_low, price_high, newest
	Limit        int
	Offset       int
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	var l domain.Listing
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Listing{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ListingRepository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Listing, error) {
	var out []domain.Listing
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// Search applies the public filters over available listings. A requested date
// window excludes listings holding an overlapping pending/confirmed booking.
func (r *ListingRepository) Search(ctx context.Context, f SearchFilter) ([]domain.Listing, error) {
	q := r.db.WithContext(ctx).Model(&domain.Listing{}).Where("available = ?", true)

	if f.Location != "" {
		pattern := "%" + f.Location + "%"
		q = q.Where("location LIKE ? OR title LIKE ?", pattern, pattern)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.MinPrice != nil {
		q = q.Where("price_per_night >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_per_night <= ?", *f.MaxPrice)
	}
	if f.MinGuests > 0 {
		q = q.Where("max_guests >= ?", f.MinGuests)
	}
	if f.MinBedrooms > 0 {
		q = q.Where("bedrooms >= ?", f.MinBedrooms)
	}

	if f.CheckIn != nil && f.CheckOut != nil {
		sub := r.db.Model(&domain.Booking{}).
			Select("listing_id").
			Where("status IN ? AND check_in < ? AND check_out > ?",
				blockingStatuses, *f.CheckOut, *f.CheckIn)
		q = q.Where("id NOT IN (?)", sub)
	}

	switch f.SortBy {
	case "price_low":
		q = q.Order("price_per_night ASC")
	case "price_high":
		q = q.Order("price_per_night DESC")
	default:
		q = q.Order("created_at DESC")
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var out []domain.Listing
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
