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

	"travelnest/internal/domain"
)

func seedPayment(t *testing.T, db *gorm.DB, status domain.PaymentStatus) *domain.Payment {
	t.Helper()

	l := seedListing(t, db)
	b := newBooking(l, date(2026, 1, 10), date(2026, 1, 12), domain.BookingPending)
	require.NoError(t, db.Create(b).Error)

	p := &domain.Payment{
		BookingID: b.ID,
		UserID:    b.GuestID,
		Amount:    decimal.RequireFromString("200.00"),
		Currency:  "ETB",
		Status:    status,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestPaymentRepository_Create_DuplicateBooking(t *testing.T) {
	db := setupDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := seedPayment(t, db, domain.PaymentPending)

	dup := &domain.Payment{
		BookingID: p.BookingID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		Currency:  "ETB",
		Status:    domain.PaymentPending,
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrDuplicate)
}

func TestPaymentRepository_MarkCompletedIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := seedPayment(t, db, domain.PaymentProcessing)
	completedAt := time.Date(2026, 1, 11, 9, 30, 0, 0, time.UTC)

	changed, err := repo.MarkCompletedIdempotent(ctx, p.Reference, "ch-123", "telebirr", `{"source":"verify"}`, false, completedAt)
	require.NoError(t, err)
	assert.True(t, changed)

	// The late webhook only refreshes its payload slot.
	changed, err = repo.MarkCompletedIdempotent(ctx, p.Reference, "ch-456", "cbe", `{"source":"webhook"}`, true, completedAt.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := repo.GetByReference(ctx, p.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, got.Status)
	require.NotNil(t, got.TransactionID)
	assert.Equal(t, "ch-123", *got.TransactionID)
	assert.Equal(t, "telebirr", got.PaymentMethod)
	assert.Equal(t, `{"source":"verify"}`, got.VerifyPayload)
	assert.Equal(t, `{"source":"webhook"}`, got.WebhookPayload)
}

func TestPaymentRepository_MarkCompletedIdempotent_UnknownReference(t *testing.T) {
	db := setupDB(t)
	repo := NewPaymentRepository(db)

	_, err := repo.MarkCompletedIdempotent(context.Background(), "no-such-ref", "", "", "{}", false, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentRepository_ApplyStatusUnlessTerminal(t *testing.T) {
	db := setupDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := seedPayment(t, db, domain.PaymentProcessing)

	got, err := repo.ApplyStatusUnlessTerminal(ctx, p.Reference, domain.PaymentFailed, `{"status":"failed"}`, true)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, got.Status)

	// A completed payment never regresses on a stale failure report.
	done := seedPayment(t, db, domain.PaymentCompleted)
	got, err = repo.ApplyStatusUnlessTerminal(ctx, done.Reference, domain.PaymentFailed, `{"status":"failed"}`, false)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, got.Status)

	stored, err := repo.GetByReference(ctx, done.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, stored.Status)
	assert.Equal(t, `{"status":"failed"}`, stored.VerifyPayload)
}

func TestPaymentRepository_MarkInitiationFailed_SkipsTerminal(t *testing.T) {
	db := setupDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := seedPayment(t, db, domain.PaymentCompleted)
	require.NoError(t, repo.MarkInitiationFailed(ctx, p.ID))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, got.Status)
}

func TestPaymentRepository_ReferenceGeneratedOnCreate(t *testing.T) {
	db := setupDB(t)
	_ = NewPaymentRepository(db)

	p := seedPayment(t, db, domain.PaymentPending)
	assert.NotEmpty(t, p.Reference)
	_, err := uuid.Parse(p.Reference)
	assert.NoError(t, err)
}
