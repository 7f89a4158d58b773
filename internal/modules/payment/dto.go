package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"travelnest/internal/domain"
)

type InitiateRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
}

type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	BookingID   uuid.UUID       `json:"booking_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
	CheckoutURL string          `json:"checkout_url,omitempty"`
	Method      string          `json:"payment_method,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		BookingID:   p.BookingID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Reference:   p.Reference,
		Status:      string(p.Status),
		CheckoutURL: p.CheckoutURL,
		Method:      p.PaymentMethod,
		CompletedAt: p.CompletedAt,
		CreatedAt:   p.CreatedAt,
	}
}

func toPaymentResponses(ps []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for i := range ps {
		out = append(out, toPaymentResponse(&ps[i]))
	}
	return out
}
