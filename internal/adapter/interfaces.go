// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound transports of go-user-accounts.
//
// [MailSender] delivers transactional email. The server uses
// [NewSMTPMailAdapter] when an SMTP host is configured and [NewLogMailAdapter]
// otherwise.
//
// [ServerAdapter] is the HTTP/REST client of the account API used by the
// accountctl operator CLI ([NewHTTPServerAdapter]). Non-2xx responses are
// mapped to the sentinel errors in errors.go so callers can use [errors.Is]
// (e.g. [ErrUnauthorized] for 401, [ErrForbidden] for 403).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// MailMessage is a rendered email ready for delivery.
type MailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// MailSender delivers a single message.
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

// ServerAdapter defines communication with the account API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)
	// Token returns the stored bearer token, or "".
	Token() string

	Register(ctx context.Context, req models.RegisterRequest) (models.AccountResponse, error)
	// Login exchanges credentials for a bearer token and stores it.
	Login(ctx context.Context, email, password string) (models.TokenResponse, error)
	VerifyEmail(ctx context.Context, email, token string) error

	Me(ctx context.Context) (models.AccountResponse, error)
	ListAccounts(ctx context.Context, skip, limit int) (models.AccountListResponse, error)
	GetAccount(ctx context.Context, id uuid.UUID) (models.AccountResponse, error)
	UnlockAccount(ctx context.Context, id uuid.UUID) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error

	// Version returns the plain-text server version.
	Version(ctx context.Context) (string, error)
}
