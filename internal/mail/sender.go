package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"travelnest/internal/config"
)

// Sender renders a template and pushes the mail through SMTP.
type Sender struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *Sender) Send(m Message) error {
	subject, body, err := render(m)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.SenderEmail)
	msg.SetHeader("To", m.Recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return s.dialer.DialAndSend(msg)
}

func render(m Message) (subject, body string, err error) {
	ctx := m.Context
	switch m.Template {
	case TemplateBookingConfirmation:
		subject = "Your booking is confirmed"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour booking %s for %s (%s to %s) is confirmed. Total paid: %s %s.\n\nEnjoy your stay!\n",
			ctx["guest_name"], ctx["booking_id"], ctx["listing_title"],
			ctx["check_in"], ctx["check_out"], ctx["amount"], ctx["currency"],
		)
		return subject, body, nil
	default:
		return "", "", fmt.Errorf("unknown mail template %q", m.Template)
	}
}
