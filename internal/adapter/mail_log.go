package adapter

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
)

// LogMailAdapter writes outgoing mail to the log instead of delivering it.
// It is used when no SMTP host is configured.
type LogMailAdapter struct {
	logger *logger.Logger
}

// NewLogMailAdapter returns a [LogMailAdapter] writing to log.
func NewLogMailAdapter(log *logger.Logger) *LogMailAdapter {
	return &LogMailAdapter{logger: log}
}

// Send implements [MailSender].
func (a *LogMailAdapter) Send(ctx context.Context, msg MailMessage) error {
	if _, err := mail.ParseAddress(msg.To); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecipient, err)
	}

	body := msg.TextBody
	if body == "" {
		body = msg.HTMLBody
	}

	a.logger.Info().
		Str("func", "LogMailAdapter.Send").
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", body).
		Msg("mail delivery disabled, message logged")
	return nil
}

// NewMailSender picks the SMTP adapter when cfg.Host is set and the log
// adapter otherwise.
func NewMailSender(cfg config.Mail, log *logger.Logger) (MailSender, error) {
	if cfg.Host == "" {
		log.Warn().Str("func", "NewMailSender").Msg("no mail host configured, emails will only be logged")
		return NewLogMailAdapter(log), nil
	}

	sender, err := NewSMTPMailAdapter(cfg, log)
	if err != nil {
		return nil, err
	}
	return sender, nil
}
