package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/MKhiriev/go-user-accounts/templates"
)

type notificationService struct {
	sender  adapter.MailSender
	baseURL string

	logger *logger.Logger
}

// NewNotificationService returns a NotificationService rendering the
// embedded templates and delivering them through sender. baseURL prefixes
// the links placed in messages.
func NewNotificationService(sender adapter.MailSender, baseURL string, logger *logger.Logger) NotificationService {
	return &notificationService{
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (s *notificationService) SendVerificationEmail(ctx context.Context, account models.Account) error {
	if account.VerificationToken == nil || *account.VerificationToken == "" {
		return fmt.Errorf("%w: account has no verification token", ErrNotificationFailed)
	}

	return s.SendTemplatedEmail(ctx, templates.EmailVerification, templates.Data{
		Name:            displayName(account),
		Email:           account.Email,
		VerificationURL: s.verificationURL(account.Email, *account.VerificationToken),
	}, account.Email)
}

func (s *notificationService) SendPasswordResetEmail(ctx context.Context, account models.Account) error {
	return s.SendTemplatedEmail(ctx, templates.PasswordReset, templates.Data{
		Name:  displayName(account),
		Email: account.Email,
	}, account.Email)
}

func (s *notificationService) SendTemplatedEmail(ctx context.Context, templateName string, data templates.Data, recipient string) error {
	log := logger.FromContext(ctx)

	subject, body, err := templates.Render(templateName, data)
	if err != nil {
		log.Err(err).Str("func", "notificationService.SendTemplatedEmail").Str("template", templateName).Msg("error rendering email")
		return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	err = s.sender.Send(ctx, adapter.MailMessage{
		To:       recipient,
		Subject:  subject,
		HTMLBody: body,
	})
	if err != nil {
		log.Err(err).Str("func", "notificationService.SendTemplatedEmail").Str("template", templateName).Msg("error sending email")
		return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	return nil
}

func (s *notificationService) verificationURL(email, token string) string {
	query := url.Values{}
	query.Set("email", email)
	query.Set("token", token)
	return s.baseURL + "/verify-email?" + query.Encode()
}

func displayName(account models.Account) string {
	if account.FirstName != nil && *account.FirstName != "" {
		return *account.FirstName
	}
	return account.Nickname
}
