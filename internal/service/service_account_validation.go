package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-accounts/internal/validators"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
)

// AccountValidationService validates input before delegating to the wrapped
// AccountService. Calls without a request body pass straight through.
type AccountValidationService struct {
	inner     AccountService
	validator validators.Validator
}

func NewAccountValidationService() AccountServiceWrapper {
	return &AccountValidationService{
		validator: validators.NewAccountValidator(),
	}
}

func (v *AccountValidationService) Wrap(inner AccountService) AccountService {
	v.inner = inner
	return v
}

func (v *AccountValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Account{}, fmt.Errorf("error during registration validation: %w", err)
	}

	return v.inner.Register(ctx, req)
}

func (v *AccountValidationService) Create(ctx context.Context, req models.CreateAccountRequest) (models.Account, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Account{}, fmt.Errorf("error during account creation validation: %w", err)
	}

	return v.inner.Create(ctx, req)
}

func (v *AccountValidationService) Login(ctx context.Context, email, password string) (models.Account, error) {
	return v.inner.Login(ctx, email, password)
}

func (v *AccountValidationService) VerifyEmail(ctx context.Context, email, token string) (bool, error) {
	return v.inner.VerifyEmail(ctx, email, token)
}

func (v *AccountValidationService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (bool, error) {
	if err := v.validator.Validate(ctx, models.ResetPasswordRequest{Password: newPassword}); err != nil {
		return false, fmt.Errorf("error during password reset validation: %w", err)
	}

	return v.inner.ResetPassword(ctx, id, newPassword)
}

func (v *AccountValidationService) Unlock(ctx context.Context, id uuid.UUID) (bool, error) {
	return v.inner.Unlock(ctx, id)
}

func (v *AccountValidationService) Get(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return v.inner.Get(ctx, id)
}

func (v *AccountValidationService) Update(ctx context.Context, id uuid.UUID, req models.UpdateAccountRequest) (models.Account, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Account{}, fmt.Errorf("error during account update validation: %w", err)
	}

	return v.inner.Update(ctx, id, req)
}

func (v *AccountValidationService) Delete(ctx context.Context, id uuid.UUID) error {
	return v.inner.Delete(ctx, id)
}

func (v *AccountValidationService) List(ctx context.Context, skip, limit int) (models.AccountPage, error) {
	return v.inner.List(ctx, skip, limit)
}

func (v *AccountValidationService) Count(ctx context.Context) (int64, error) {
	return v.inner.Count(ctx)
}
