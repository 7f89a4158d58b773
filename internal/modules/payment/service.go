package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelnest/internal/config"
	"travelnest/internal/domain"
	"travelnest/internal/mail"
	"travelnest/internal/platform/logger"
	"travelnest/internal/repository"
)

type Service struct {
	payments PaymentRepository
	bookings BookingStore
	users    UserReader
	gateway  GatewayClient
	mailer   MailEnqueuer
	log      logger.Logger

	currency      string
	callbackURL   string
	returnURL     string
	webhookSecret string
}

func NewService(
	payments PaymentRepository,
	bookings BookingStore,
	users UserReader,
	gateway GatewayClient,
	mailer MailEnqueuer,
	log logger.Logger,
	cfg config.ChapaConfig,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		payments:      payments,
		bookings:      bookings,
		users:         users,
		gateway:       gateway,
		mailer:        mailer,
		log:           log,
		currency:      cfg.Currency,
		callbackURL:   cfg.CallbackURL,
		returnURL:     cfg.ReturnURL,
		webhookSecret: cfg.WebhookSecret,
	}
}

// Initiate creates-or-fetches the single payment for a booking and asks the
// gateway for a checkout handle. Repeated initiation before completion reuses
// the same reference; a completed or in-flight payment is never re-initiated.
func (s *Service) Initiate(ctx context.Context, bookingID, requesterID uuid.UUID) (*domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.GuestID != requesterID {
		return nil, ErrForbidden
	}

	p, err := s.payments.GetByBookingID(ctx, bookingID)
	switch {
	case err == nil:
		if p.Status == domain.PaymentCompleted || p.Status == domain.PaymentProcessing {
			return nil, ErrAlreadyPaid
		}
	case errors.Is(err, repository.ErrNotFound):
		p = &domain.Payment{
			BookingID: bookingID,
			UserID:    requesterID,
			Amount:    b.TotalPrice,
			Currency:  s.currency,
			Status:    domain.PaymentPending,
		}
		if createErr := s.payments.Create(ctx, p); createErr != nil {
			if !errors.Is(createErr, repository.ErrDuplicate) {
				return nil, createErr
			}
			// Lost the get-or-create race; the winner's row carries the reference.
			if p, err = s.payments.GetByBookingID(ctx, bookingID); err != nil {
				return nil, err
			}
			if p.Status == domain.PaymentCompleted || p.Status == domain.PaymentProcessing {
				return nil, ErrAlreadyPaid
			}
		}
	default:
		return nil, err
	}

	user, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	res, err := s.gateway.Initialize(ctx, InitializeRequest{
		Amount:      p.Amount,
		Currency:    p.Currency,
		Email:       user.Email,
		FirstName:   user.Name,
		Reference:   p.Reference,
		CallbackURL: s.callbackURL,
		ReturnURL:   s.returnURL,
	})
	if err != nil {
		s.log.Errorf("payment initialization failed reference=%s: %v", p.Reference, err)
		if markErr := s.payments.MarkInitiationFailed(ctx, p.ID); markErr != nil {
			s.log.Errorf("failed to mark payment failed reference=%s: %v", p.Reference, markErr)
		}
		return nil, ErrGateway
	}

	if err := s.payments.MarkProcessing(ctx, p.ID, res.CheckoutURL); err != nil {
		return nil, err
	}
	p.Status = domain.PaymentProcessing
	p.CheckoutURL = res.CheckoutURL

	s.log.Infof("payment initiated booking=%s reference=%s amount=%s %s", bookingID, p.Reference, p.Amount, p.Currency)
	return p, nil
}

// Verify is the client-driven reconciliation source: it polls the gateway for
// the current outcome and applies it.
func (s *Service) Verify(ctx context.Context, reference string, requesterID uuid.UUID) (*domain.Payment, error) {
	p, err := s.payments.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if p.UserID != requesterID {
		return nil, ErrForbidden
	}

	v, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		// The payment keeps its current status; a later poll or the webhook
		// can still settle it.
		s.log.Errorf("payment verification failed reference=%s: %v", reference, err)
		return nil, ErrGateway
	}

	return s.reconcile(ctx, reference, v, false)
}

type webhookPayload struct {
	Status    string `json:"status"`
	TxRef     string `json:"tx_ref"`
	Reference string `json:"reference"`
	Method    string `json:"payment_method"`
}

// HandleWebhook is the gateway-driven reconciliation source. The body is
// authenticated by its HMAC signature before any state is touched.
func (s *Service) HandleWebhook(ctx context.Context, signature string, body []byte) (*domain.Payment, error) {
	if !s.validSignature(signature, body) {
		return nil, ErrInvalidSignature
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.TxRef == "" {
		return nil, ErrValidation
	}

	v := &VerificationResult{
		Status:        payload.Status,
		TransactionID: payload.Reference,
		Method:        payload.Method,
		Raw:           string(body),
	}
	return s.reconcile(ctx, payload.TxRef, v, true)
}

// reconcile applies one external outcome report. Both sources funnel here;
// the transition into completed happens at most once and is the only path
// that confirms the booking and queues the notification.
func (s *Service) reconcile(ctx context.Context, reference string, v *VerificationResult, fromWebhook bool) (*domain.Payment, error) {
	switch v.Status {
	case GatewayStatusSuccess:
		changed, err := s.payments.MarkCompletedIdempotent(
			ctx, reference, v.TransactionID, v.Method, v.Raw, fromWebhook, time.Now().UTC())
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPaymentNotFound
			}
			return nil, err
		}
		if changed {
			s.onCompleted(ctx, reference)
		} else {
			s.log.Infof("duplicate success report reference=%s webhook=%t", reference, fromWebhook)
		}

		p, err := s.payments.GetByReference(ctx, reference)
		if err != nil {
			return nil, err
		}
		return p, nil

	case GatewayStatusFailed:
		return s.applyUnlessTerminal(ctx, reference, domain.PaymentFailed, v.Raw, fromWebhook)

	default:
		return s.applyUnlessTerminal(ctx, reference, domain.PaymentProcessing, v.Raw, fromWebhook)
	}
}

func (s *Service) applyUnlessTerminal(ctx context.Context, reference string, status domain.PaymentStatus, raw string, fromWebhook bool) (*domain.Payment, error) {
	p, err := s.payments.ApplyStatusUnlessTerminal(ctx, reference, status, raw, fromWebhook)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

// onCompleted runs the once-per-payment side effects: cascade the booking to
// confirmed and queue the confirmation email. Mail problems are logged and
// swallowed; reconciliation never depends on notification delivery.
func (s *Service) onCompleted(ctx context.Context, reference string) {
	p, err := s.payments.GetByReference(ctx, reference)
	if err != nil {
		s.log.Errorf("completed payment vanished reference=%s: %v", reference, err)
		return
	}

	confirmed, err := s.bookings.ConfirmFromPayment(ctx, p.BookingID)
	if err != nil {
		s.log.Errorf("failed to confirm booking %s after payment %s: %v", p.BookingID, reference, err)
		return
	}
	if !confirmed {
		s.log.Warnf("booking %s not pending when payment %s completed", p.BookingID, reference)
	}

	b, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		s.log.Errorf("failed to load booking %s for confirmation mail: %v", p.BookingID, err)
		return
	}
	user, err := s.users.GetByID(ctx, b.GuestID)
	if err != nil {
		s.log.Errorf("failed to load guest %s for confirmation mail: %v", b.GuestID, err)
		return
	}

	msg := mail.Message{
		Template:  mail.TemplateBookingConfirmation,
		Recipient: user.Email,
		Context: map[string]string{
			"guest_name": user.Name,
			"booking_id": b.ID.String(),
			"check_in":   b.CheckIn.Format("2006-01-02"),
			"check_out":  b.CheckOut.Format("2006-01-02"),
			"amount":     p.Amount.StringFixed(2),
			"currency":   p.Currency,
		},
	}
	if b.Listing != nil {
		msg.Context["listing_title"] = b.Listing.Title
	}
	if err := s.mailer.Enqueue(ctx, msg); err != nil {
		s.log.Errorf("failed to queue confirmation mail booking=%s: %v", b.ID, err)
	}
}

func (s *Service) validSignature(signature string, body []byte) bool {
	if s.webhookSecret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(strings.ToLower(signature)), []byte(expected))
}

// Status returns one payment to its owner.
func (s *Service) Status(ctx context.Context, paymentID, requesterID uuid.UUID) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if p.UserID != requesterID {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// History lists the requester's payments, newest first.
func (s *Service) History(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, requesterID, limit, offset)
}
