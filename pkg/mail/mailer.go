// Package mail sends transactional email over SMTP. Delivery failures
// are the caller's to log; nothing here retries.
package mail

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type Mailer interface {
	Send(ctx context.Context, to, templateName string, values map[string]string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cfg SMTPConfig) (Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize smtp client: %w", err)
	}

	return &smtpMailer{client: client, from: cfg.From}, nil
}

func (m *smtpMailer) Send(ctx context.Context, to, templateName string, values map[string]string) error {
	tpl, ok := Render(templateName, values)
	if !ok {
		return fmt.Errorf("unknown email template: %s", templateName)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(tpl.Subject)
	msg.SetBodyString(mail.TypeTextPlain, tpl.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, tpl.HTML)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	return nil
}
