package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/wneessen/go-mail"
)

// SMTPMailAdapter delivers mail through an SMTP relay.
type SMTPMailAdapter struct {
	client *mail.Client
	from   string
	logger *logger.Logger
}

// NewSMTPMailAdapter builds a go-mail client from cfg. SMTP AUTH (LOGIN) is
// enabled only when both username and password are set.
func NewSMTPMailAdapter(cfg config.Mail, log *logger.Logger) (*SMTPMailAdapter, error) {
	policy, err := tlsPolicy(cfg.TLSPolicy)
	if err != nil {
		return nil, err
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(policy),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewSMTPMailAdapter").Msg("failed to create mail client")
		return nil, fmt.Errorf("error creating mail client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	log.Debug().Str("func", "NewSMTPMailAdapter").
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("tls_policy", cfg.TLSPolicy).
		Msg("mail client created")

	return &SMTPMailAdapter{client: client, from: from, logger: log}, nil
}

func tlsPolicy(name string) (mail.TLSPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mandatory":
		return mail.TLSMandatory, nil
	case "opportunistic":
		return mail.TLSOpportunistic, nil
	case "none":
		return mail.NoTLS, nil
	default:
		return mail.NoTLS, fmt.Errorf("%w: %q", ErrUnsupportedTLSPolicy, name)
	}
}

// Send implements [MailSender]. Both bodies are attached when present, the
// HTML one as an alternative to plain text.
func (a *SMTPMailAdapter) Send(ctx context.Context, msg MailMessage) error {
	log := logger.FromContext(ctx)

	m, err := buildMsg(a.from, msg)
	if err != nil {
		log.Err(err).Str("func", "SMTPMailAdapter.Send").Msg("invalid mail message")
		return err
	}

	if err = a.client.DialAndSendWithContext(ctx, m); err != nil {
		log.Err(err).Str("func", "SMTPMailAdapter.Send").Str("to", msg.To).Msg("failed to send email")
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	log.Info().Str("func", "SMTPMailAdapter.Send").Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

func buildMsg(from string, msg MailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSender, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecipient, err)
	}
	m.Subject(msg.Subject)

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	default:
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	}

	return m, nil
}
