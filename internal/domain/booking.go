package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Terminal reports whether no further booking transition is permitted.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Blocking statuses reserve the date range against other bookings.
func (s BookingStatus) Blocking() bool {
	return s == BookingPending || s == BookingConfirmed
}

type Booking struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ListingID      uuid.UUID       `json:"listing_id" gorm:"type:uuid;index;not null"`
	GuestID        uuid.UUID       `json:"guest_id" gorm:"type:uuid;index;not null"`
	CheckIn        time.Time       `json:"check_in" gorm:"type:date;not null;index:idx_bookings_window"`
	CheckOut       time.Time       `json:"check_out" gorm:"type:date;not null;index:idx_bookings_window"`
	NumberOfGuests int             `json:"number_of_guests" gorm:"not null"`
	TotalPrice     decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status         BookingStatus   `json:"status" gorm:"size:20;default:'pending';index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Guest   *User    `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Nights is the stay length in whole days of the half-open [check_in, check_out) range.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
