package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, plain, html string) error
}

// SendGridMailer kirim email transaksional lewat SendGrid.
type SendGridMailer struct {
	APIKey string
	From   string
	Log    *zap.Logger
}

func (m *SendGridMailer) Send(_ context.Context, to, subject, plain, html string) error {
	if m.APIKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	msg := mail.NewSingleEmail(
		mail.NewEmail("Canvas Clothing Store", m.From),
		subject,
		mail.NewEmail("", to),
		plain,
		html,
	)

	resp, err := sendgrid.NewSendClient(m.APIKey).Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}

	m.Log.Info("mail sent", zap.String("to", to), zap.String("subject", subject), zap.Int("status", resp.StatusCode))
	return nil
}
