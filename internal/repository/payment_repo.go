package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelnest/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the payment; the unique index on booking_id turns a racing
// duplicate initiation into ErrDuplicate so the caller can re-fetch.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var out []domain.Payment
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// MarkProcessing records a successful gateway initialization.
func (r *PaymentRepository) MarkProcessing(ctx context.Context, id uuid.UUID, checkoutURL string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       domain.PaymentProcessing,
			"checkout_url": checkoutURL,
		}).Error
}

// MarkInitiationFailed records a gateway rejection during initiation. A payment
// that already reached a terminal state is never downgraded.
func (r *PaymentRepository) MarkInitiationFailed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ? AND status IN ?", id, []domain.PaymentStatus{domain.PaymentPending, domain.PaymentProcessing}).
		Update("status", domain.PaymentFailed).Error
}

// MarkCompletedIdempotent is the reconciliation write. Inside one transaction it
// locks the payment row, and only if the payment is not yet completed applies the
// terminal update. Both reconciliation sources call this; whichever arrives
// second sees changed=false and merely refreshes the stored raw payload.
func (r *PaymentRepository) MarkCompletedIdempotent(ctx context.Context, reference string, txID, method, rawPayload string, fromWebhook bool, completedAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := lockForUpdate(tx).First(&p, "reference = ?", reference).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{payloadColumn(fromWebhook): rawPayload}
		if p.Status != domain.PaymentCompleted {
			updates["status"] = domain.PaymentCompleted
			updates["completed_at"] = completedAt
			if txID != "" {
				updates["transaction_id"] = txID
			}
			if method != "" {
				updates["payment_method"] = method
			}
			changed = true
		}

		return tx.Model(&domain.Payment{}).Where("reference = ?", reference).Updates(updates).Error
	})
	return changed, err
}

// ApplyStatusUnlessTerminal stores a failed/processing outcome unless the payment
// already reached a terminal state, in which case only the raw payload is kept.
func (r *PaymentRepository) ApplyStatusUnlessTerminal(ctx context.Context, reference string, status domain.PaymentStatus, rawPayload string, fromWebhook bool) (*domain.Payment, error) {
	var out *domain.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := lockForUpdate(tx).First(&p, "reference = ?", reference).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{payloadColumn(fromWebhook): rawPayload}
		if !p.Status.Terminal() {
			updates["status"] = status
			p.Status = status
		}
		if err := tx.Model(&domain.Payment{}).Where("reference = ?", reference).Updates(updates).Error; err != nil {
			return err
		}
		out = &p
		return nil
	})
	return out, err
}

func payloadColumn(fromWebhook bool) string {
	if fromWebhook {
		return "webhook_payload"
	}
	return "verify_payload"
}
