package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/crypto"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/store"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
)

const (
	nicknameGenerationAttempts = 5

	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// accountService is the concrete implementation of AccountService. It holds
// no mutable state; all dependencies are injected.
type accountService struct {
	accountRepository store.AccountRepository
	passwordHasher    crypto.PasswordHasher
	tokenGenerator    crypto.TokenGenerator
	notifier          NotificationService

	// maxLoginAttempts is the failure count at which an account gets locked.
	maxLoginAttempts int

	clock             func() time.Time
	generateNickname  func() (string, error)
	generateAccountID func() uuid.UUID

	logger *logger.Logger
}

// NewAccountService wires an AccountService. cfg supplies the lockout
// threshold.
func NewAccountService(
	accountRepository store.AccountRepository,
	passwordHasher crypto.PasswordHasher,
	tokenGenerator crypto.TokenGenerator,
	notifier NotificationService,
	cfg config.App,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		passwordHasher:    passwordHasher,
		tokenGenerator:    tokenGenerator,
		notifier:          notifier,
		maxLoginAttempts:  cfg.MaxLoginAttempts,
		clock:             time.Now,
		generateNickname:  utils.GenerateNickname,
		generateAccountID: utils.NewAccountID,
		logger:            logger,
	}
}

func (s *accountService) now() time.Time {
	return s.clock().UTC().Truncate(time.Microsecond)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a self-registered account with role AUTHENTICATED and
// sends the verification email. A failed email does not undo the account.
func (s *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	return s.create(ctx, req, models.RoleAuthenticated)
}

// Create is Register for elevated callers. An empty role means AUTHENTICATED.
func (s *accountService) Create(ctx context.Context, req models.CreateAccountRequest) (models.Account, error) {
	role := req.Role
	if role == "" {
		role = models.RoleAuthenticated
	}

	normalized, err := models.NormalizeRole(role)
	if err != nil {
		return models.Account{}, err
	}

	return s.create(ctx, req.RegisterRequest, normalized)
}

func (s *accountService) create(ctx context.Context, req models.RegisterRequest, role models.Role) (models.Account, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)

	_, err := s.accountRepository.FindByEmail(ctx, email)
	switch {
	case err == nil:
		log.Info().Str("func", "accountService.create").Str("email", email).Msg("account with given email already exists")
		return models.Account{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrAccountNotFound):
		log.Err(err).Str("func", "accountService.create").Msg("error looking up account by email")
		return models.Account{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	hashedPassword, err := s.passwordHasher.Hash(req.Password)
	req.Password = ""
	if err != nil {
		log.Err(err).Str("func", "accountService.create").Msg("error hashing password")
		return models.Account{}, fmt.Errorf("error hashing password: %w", err)
	}

	nickname, err := s.resolveNickname(ctx, req.Nickname)
	if err != nil {
		return models.Account{}, err
	}

	verificationToken, err := s.tokenGenerator.Generate()
	if err != nil {
		log.Err(err).Str("func", "accountService.create").Msg("error generating verification token")
		return models.Account{}, fmt.Errorf("error generating verification token: %w", err)
	}

	now := s.now()
	account := models.Account{
		ID:                 s.generateAccountID(),
		Email:              email,
		Nickname:           nickname,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Bio:                req.Bio,
		ProfilePictureURL:  req.ProfilePictureURL,
		LinkedInProfileURL: req.LinkedInProfileURL,
		GitHubProfileURL:   req.GitHubProfileURL,
		HashedPassword:     hashedPassword,
		Role:               role,
		VerificationToken:  &verificationToken,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.accountRepository.Create(ctx, account)
	if err != nil {
		return models.Account{}, s.mapStoreError(ctx, "accountService.create", err)
	}

	log.Info().Str("func", "accountService.create").
		Str("account_id", created.ID.String()).
		Str("role", created.Role.String()).
		Msg("account created")

	if err = s.notifier.SendVerificationEmail(ctx, created); err != nil {
		log.Warn().Err(err).Str("func", "accountService.create").Str("account_id", created.ID.String()).Msg("verification email was not sent")
	}

	return created, nil
}

// resolveNickname returns the supplied nickname when it is free, otherwise
// generates one that is not taken yet.
func (s *accountService) resolveNickname(ctx context.Context, supplied *string) (string, error) {
	log := logger.FromContext(ctx)

	if supplied != nil && strings.TrimSpace(*supplied) != "" {
		nickname := strings.TrimSpace(*supplied)
		taken, err := s.nicknameTaken(ctx, nickname)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrDuplicateNickname
		}
		return nickname, nil
	}

	for range nicknameGenerationAttempts {
		nickname, err := s.generateNickname()
		if err != nil || nickname == "" {
			log.Err(err).Str("func", "accountService.resolveNickname").Msg("nickname generator returned no value")
			return "", ErrNicknameGeneration
		}

		taken, err := s.nicknameTaken(ctx, nickname)
		if err != nil {
			return "", err
		}
		if !taken {
			return nickname, nil
		}
	}

	log.Error().Str("func", "accountService.resolveNickname").Msg("every generated nickname was taken")
	return "", ErrNicknameGeneration
}

func (s *accountService) nicknameTaken(ctx context.Context, nickname string) (bool, error) {
	_, err := s.accountRepository.FindByNickname(ctx, nickname)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrAccountNotFound):
		return false, nil
	default:
		logger.FromContext(ctx).Err(err).Str("func", "accountService.nicknameTaken").Msg("error looking up nickname")
		return false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}

// Login evaluates, in order: existence, email verification, lock, password.
// Only a password mismatch touches the failure counter.
func (s *accountService) Login(ctx context.Context, email, password string) (models.Account, error) {
	log := logger.FromContext(ctx)
	email = normalizeEmail(email)

	account, err := s.accountRepository.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrAccountNotFound) {
		log.Info().Str("func", "accountService.Login").Msg("login attempt failed: account not found")
		return models.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "accountService.Login").Msg("error looking up account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if !account.EmailVerified {
		log.Info().Str("func", "accountService.Login").Str("account_id", account.ID.String()).Msg("login attempt failed: email not verified")
		return models.Account{}, ErrEmailNotVerified
	}

	if account.IsLocked {
		log.Info().Str("func", "accountService.Login").Str("account_id", account.ID.String()).Msg("login attempt failed: account locked")
		return models.Account{}, ErrAccountLocked
	}

	if !s.passwordHasher.Verify(password, account.HashedPassword) {
		attempts, locked, err := s.accountRepository.RegisterFailedLogin(ctx, account.ID, s.maxLoginAttempts)
		if err != nil {
			log.Err(err).Str("func", "accountService.Login").Msg("error registering failed login")
			return models.Account{}, fmt.Errorf("%w: %w", ErrPersistence, err)
		}

		event := log.Info().Str("func", "accountService.Login").
			Str("account_id", account.ID.String()).
			Int("failed_login_attempts", attempts)
		if locked {
			event.Msg("account locked due to too many failed attempts")
		} else {
			event.Msg("login attempt failed: wrong password")
		}
		return models.Account{}, ErrInvalidCredentials
	}

	loginAt := s.now()
	if err = s.accountRepository.RecordSuccessfulLogin(ctx, account.ID, loginAt); err != nil {
		log.Err(err).Str("func", "accountService.Login").Msg("error recording successful login")
		return models.Account{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	account.FailedLoginAttempts = 0
	account.LastLoginAt = &loginAt
	account.UpdatedAt = loginAt

	log.Info().Str("func", "accountService.Login").Str("account_id", account.ID.String()).Msg("login succeeded")
	return account, nil
}

// VerifyEmail fails closed. The token is consumed on success.
func (s *accountService) VerifyEmail(ctx context.Context, email, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	ok, err := s.accountRepository.ConsumeVerificationToken(ctx, normalizeEmail(email), token)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.VerifyEmail").Msg("error consuming verification token")
		return false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return ok, nil
}

// ResetPassword stores a new hash, clears the failure counter and unlocks.
// It reports false when the account does not exist.
func (s *accountService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (bool, error) {
	log := logger.FromContext(ctx)

	hashedPassword, err := s.passwordHasher.Hash(newPassword)
	if err != nil {
		log.Err(err).Str("func", "accountService.ResetPassword").Msg("error hashing password")
		return false, fmt.Errorf("error hashing password: %w", err)
	}

	ok, err := s.accountRepository.ResetPassword(ctx, id, hashedPassword)
	if err != nil {
		log.Err(err).Str("func", "accountService.ResetPassword").Msg("error resetting password")
		return false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !ok {
		return false, nil
	}

	account, err := s.accountRepository.FindByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("func", "accountService.ResetPassword").Msg("password reset, account reload failed")
		return true, nil
	}
	if err = s.notifier.SendPasswordResetEmail(ctx, account); err != nil {
		log.Warn().Err(err).Str("func", "accountService.ResetPassword").Msg("password reset email was not sent")
	}

	return true, nil
}

// Unlock reports false when the account is not locked. A missing account is
// ErrNotFound.
func (s *accountService) Unlock(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := s.accountRepository.Unlock(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.Unlock").Msg("error unlocking account")
		return false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if ok {
		return true, nil
	}

	if _, err = s.Get(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (s *accountService) Get(ctx context.Context, id uuid.UUID) (models.Account, error) {
	account, err := s.accountRepository.FindByID(ctx, id)
	if err != nil {
		return models.Account{}, s.mapStoreError(ctx, "accountService.Get", err)
	}

	return account, nil
}

// Update applies the supplied fields. A new password is re-hashed.
func (s *accountService) Update(ctx context.Context, id uuid.UUID, req models.UpdateAccountRequest) (models.Account, error) {
	update := models.AccountUpdate{
		Nickname:           req.Nickname,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Bio:                req.Bio,
		ProfilePictureURL:  req.ProfilePictureURL,
		LinkedInProfileURL: req.LinkedInProfileURL,
		GitHubProfileURL:   req.GitHubProfileURL,
		Role:               req.Role,
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		update.Email = &email
	}
	if req.Password != nil {
		hashedPassword, err := s.passwordHasher.Hash(*req.Password)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "accountService.Update").Msg("error hashing password")
			return models.Account{}, fmt.Errorf("error hashing password: %w", err)
		}
		update.HashedPassword = &hashedPassword
	}

	if update.IsEmpty() {
		return s.Get(ctx, id)
	}

	account, err := s.accountRepository.Update(ctx, id, update)
	if err != nil {
		return models.Account{}, s.mapStoreError(ctx, "accountService.Update", err)
	}

	logger.FromContext(ctx).Info().Str("func", "accountService.Update").Str("account_id", id.String()).Msg("account updated")
	return account, nil
}

func (s *accountService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.accountRepository.Delete(ctx, id); err != nil {
		return s.mapStoreError(ctx, "accountService.Delete", err)
	}

	logger.FromContext(ctx).Info().Str("func", "accountService.Delete").Str("account_id", id.String()).Msg("account deleted")
	return nil
}

// List returns one page of accounts. limit defaults to DefaultPageLimit and
// is capped at MaxPageLimit; a negative skip is treated as 0.
func (s *accountService) List(ctx context.Context, skip, limit int) (models.AccountPage, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	accounts, err := s.accountRepository.List(ctx, skip, limit)
	if err != nil {
		return models.AccountPage{}, s.mapStoreError(ctx, "accountService.List", err)
	}

	total, err := s.accountRepository.Count(ctx)
	if err != nil {
		return models.AccountPage{}, s.mapStoreError(ctx, "accountService.List", err)
	}

	return models.AccountPage{Items: accounts, Total: total, Skip: skip, Limit: limit}, nil
}

func (s *accountService) Count(ctx context.Context) (int64, error) {
	total, err := s.accountRepository.Count(ctx)
	if err != nil {
		return 0, s.mapStoreError(ctx, "accountService.Count", err)
	}

	return total, nil
}

// mapStoreError translates repository errors into service errors. Anything
// unexpected becomes ErrPersistence and is logged with detail.
func (s *accountService) mapStoreError(ctx context.Context, funcName string, err error) error {
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrDuplicateEmail
	case errors.Is(err, store.ErrNicknameAlreadyExists):
		return ErrDuplicateNickname
	}

	logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("persistence error")
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
