package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/MKhiriev/go-user-accounts/templates"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=AccountServiceWrapper

// AccountService holds the account business rules: registration, login
// with lockout, email verification, password reset, unlock and profile CRUD.
type AccountService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.Account, error)
	// Create registers an account on behalf of an elevated caller, who may
	// pick its role.
	Create(ctx context.Context, req models.CreateAccountRequest) (models.Account, error)

	// Login returns the account only when every check passes. Rejections are
	// ErrInvalidCredentials (possibly wrapped) or ErrAccountLocked.
	Login(ctx context.Context, email, password string) (models.Account, error)

	VerifyEmail(ctx context.Context, email, token string) (bool, error)
	ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (bool, error)
	Unlock(ctx context.Context, id uuid.UUID) (bool, error)

	Get(ctx context.Context, id uuid.UUID) (models.Account, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateAccountRequest) (models.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, skip, limit int) (models.AccountPage, error)
	Count(ctx context.Context) (int64, error)
}

// TokenService issues and verifies access tokens.
type TokenService interface {
	CreateToken(ctx context.Context, account models.Account, ttl time.Duration) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// NotificationService renders and sends transactional email.
type NotificationService interface {
	SendVerificationEmail(ctx context.Context, account models.Account) error
	SendPasswordResetEmail(ctx context.Context, account models.Account) error
	SendTemplatedEmail(ctx context.Context, templateName string, data templates.Data, recipient string) error
}

// AppInfoService exposes build and version information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// HealthService reports whether the service can reach its dependencies.
type HealthService interface {
	Check(ctx context.Context) error
}

// AccountServiceWrapper defines middleware composition for AccountService.
// Implementations wrap an existing AccountService to add behavior such as
// validating.
type AccountServiceWrapper interface {
	Wrap(AccountService) AccountService
}
