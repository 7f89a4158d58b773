package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"travelnest/internal/domain"
	"travelnest/internal/mail"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error)
	GetByReference(ctx context.Context, reference string) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Payment, error)
	MarkProcessing(ctx context.Context, id uuid.UUID, checkoutURL string) error
	MarkInitiationFailed(ctx context.Context, id uuid.UUID) error
	MarkCompletedIdempotent(ctx context.Context, reference string, txID, method, rawPayload string, fromWebhook bool, completedAt time.Time) (bool, error)
	ApplyStatusUnlessTerminal(ctx context.Context, reference string, status domain.PaymentStatus, rawPayload string, fromWebhook bool) (*domain.Payment, error)
}

type BookingStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ConfirmFromPayment(ctx context.Context, id uuid.UUID) (bool, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type MailEnqueuer interface {
	Enqueue(ctx context.Context, m mail.Message) error
}
