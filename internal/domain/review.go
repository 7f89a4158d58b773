package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ListingID uuid.UUID  `json:"listing_id" gorm:"type:uuid;index;not null;uniqueIndex:idx_reviews_listing_guest_booking"`
	GuestID   uuid.UUID  `json:"guest_id" gorm:"type:uuid;index;not null;uniqueIndex:idx_reviews_listing_guest_booking"`
	BookingID *uuid.UUID `json:"booking_id,omitempty" gorm:"type:uuid;uniqueIndex:idx_reviews_listing_guest_booking"`
	Rating    int        `json:"rating" gorm:"not null;index"`
	Comment   string     `json:"comment" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt time.Time  `json:"updated_at"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Guest   *User    `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}

func (Review) TableName() string { return "reviews" }

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
