package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
	PaymentRefunded   PaymentStatus = "refunded"
)

// Terminal reports whether the payment has reached a final state.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

// Payment is the single payment record attached to a booking. Reference is the
// externally visible idempotency key shared with the gateway; TransactionID is
// assigned by the gateway once known.
type Payment struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID      uuid.UUID       `json:"booking_id" gorm:"type:uuid;uniqueIndex;not null"`
	UserID         uuid.UUID       `json:"user_id" gorm:"type:uuid;index;not null"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency       string          `json:"currency" gorm:"size:3;not null"`
	Reference      string          `json:"reference" gorm:"size:64;uniqueIndex;not null"`
	TransactionID  *string         `json:"transaction_id,omitempty" gorm:"size:128"`
	PaymentMethod  string          `json:"payment_method,omitempty" gorm:"size:50"`
	Status         PaymentStatus   `json:"status" gorm:"size:20;default:'pending';index"`
	CheckoutURL    string          `json:"checkout_url,omitempty" gorm:"type:text"`
	VerifyPayload  string          `json:"-" gorm:"type:text"`
	WebhookPayload string          `json:"-" gorm:"type:text"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CreatedAt      time.Time       `json:"initiated_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Reference == "" {
		p.Reference = uuid.NewString()
	}
	return nil
}
