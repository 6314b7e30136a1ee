package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
	sq "github.com/Masterminds/squirrel"
)

type accountRepository struct {
	*DB
	logger *logger.Logger
	clock  func() time.Time
}

// NewAccountRepository returns an [AccountRepository] backed by db.
func NewAccountRepository(db *DB, log *logger.Logger) AccountRepository {
	return &accountRepository{
		DB:     db,
		logger: log,
		clock:  time.Now,
	}
}

func (r *accountRepository) now() time.Time {
	return r.clock().UTC().Truncate(time.Microsecond)
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return r.findOne(ctx, "accountRepository.FindByID", sq.Eq{"id": id})
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findOne(ctx, "accountRepository.FindByEmail", sq.Eq{"email": email})
}

func (r *accountRepository) FindByNickname(ctx context.Context, nickname string) (models.Account, error) {
	return r.findOne(ctx, "accountRepository.FindByNickname", sq.Eq{"nickname": nickname})
}

func (r *accountRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAccountQuery(r.builder, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building select query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var account models.Account
	err = r.withRetry(ctx, func(ctx context.Context) error {
		account, err = scanAccount(r.QueryRowContext(ctx, query, args...))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return account, nil
}

func (r *accountRepository) Create(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = account.CreatedAt
	}

	query, args, err := buildInsertAccountQuery(r.builder, account)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Create").Msg("error building insert query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		if mapped := r.mapUniqueViolation(err); mapped != nil {
			log.Debug().Err(err).Str("func", "accountRepository.Create").Msg("unique violation on insert")
			return models.Account{}, mapped
		}
		log.Err(err).Str("func", "accountRepository.Create").Msg("error inserting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return account, nil
}

func (r *accountRepository) Update(ctx context.Context, id uuid.UUID, update models.AccountUpdate) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateAccountQuery(r.builder, id, update, r.now())
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Update").Msg("error building update query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	selectQuery, selectArgs, err := buildSelectAccountQuery(r.builder, sq.Eq{"id": id})
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Update").Msg("error building select query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var account models.Account
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if affected, err := result.RowsAffected(); err == nil && affected == 0 {
			return ErrAccountNotFound
		}

		account, err = scanAccount(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
		return err
	})
	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, sql.ErrNoRows):
		return models.Account{}, ErrAccountNotFound
	}

	if mapped := r.mapUniqueViolation(err); mapped != nil {
		log.Debug().Err(err).Str("func", "accountRepository.Update").Msg("unique violation on update")
		return models.Account{}, mapped
	}
	log.Err(err).Str("func", "accountRepository.Update").Msg("error updating account")
	if errors.Is(err, ErrBeginningTransaction) || errors.Is(err, ErrCommitingTransaction) {
		return models.Account{}, err
	}
	return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteAccountQuery(r.builder, id)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Delete").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.execAffected(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Delete").Msg("error deleting account")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) List(ctx context.Context, offset, limit int) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAccountsQuery(r.builder, offset, limit)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.List").Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var accounts []models.Account
	err = r.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		accounts = make([]models.Account, 0, limit)
		for rows.Next() {
			account, err := scanAccount(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			accounts = append(accounts, account)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "accountRepository.List").Msg("error listing accounts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return accounts, nil
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountAccountsQuery(r.builder)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Count").Msg("error building count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.QueryRowContext(ctx, query, args...).Scan(&total)
	})
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Count").Msg("error counting accounts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}

func (r *accountRepository) RegisterFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int) (int, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRegisterFailedLoginQuery(r.builder, id, maxAttempts, r.now())
	if err != nil {
		log.Err(err).Str("func", "accountRepository.RegisterFailedLogin").Msg("error building query")
		return 0, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		attempts int
		locked   bool
	)
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.QueryRowContext(ctx, query, args...).Scan(&attempts, &locked)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "accountRepository.RegisterFailedLogin").Msg("error registering failed login")
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return attempts, locked, nil
}

func (r *accountRepository) RecordSuccessfulLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRecordSuccessfulLoginQuery(r.builder, id, at.UTC().Truncate(time.Microsecond))
	if err != nil {
		log.Err(err).Str("func", "accountRepository.RecordSuccessfulLogin").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.execAffected(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.RecordSuccessfulLogin").Msg("error recording login")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) ConsumeVerificationToken(ctx context.Context, email, token string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildConsumeVerificationTokenQuery(r.builder, email, token, r.now())
	if err != nil {
		log.Err(err).Str("func", "accountRepository.ConsumeVerificationToken").Msg("error building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.execAffected(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.ConsumeVerificationToken").Msg("error consuming token")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected > 0, nil
}

func (r *accountRepository) ResetPassword(ctx context.Context, id uuid.UUID, hashedPassword string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildResetPasswordQuery(r.builder, id, hashedPassword, r.now())
	if err != nil {
		log.Err(err).Str("func", "accountRepository.ResetPassword").Msg("error building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.execAffected(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.ResetPassword").Msg("error resetting password")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected > 0, nil
}

func (r *accountRepository) Unlock(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUnlockQuery(r.builder, id, r.now())
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Unlock").Msg("error building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.execAffected(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Unlock").Msg("error unlocking account")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected > 0, nil
}

func (r *accountRepository) execAffected(ctx context.Context, query string, args []any) (int64, error) {
	var affected int64
	err := r.withRetry(ctx, func(ctx context.Context) error {
		result, err := r.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})

	return affected, err
}

// mapUniqueViolation translates a unique-index violation into the matching
// domain error, or returns nil.
func (r *accountRepository) mapUniqueViolation(err error) error {
	if r.errorClassificator == nil {
		return nil
	}

	description, ok := r.errorClassificator.UniqueViolation(err)
	if !ok {
		return nil
	}

	description = strings.ToLower(description)
	switch {
	case strings.Contains(description, "nickname"):
		return ErrNicknameAlreadyExists
	case strings.Contains(description, "email"):
		return ErrEmailAlreadyExists
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		a           models.Account
		lastLoginAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Nickname,
		&a.FirstName,
		&a.LastName,
		&a.Bio,
		&a.ProfilePictureURL,
		&a.LinkedInProfileURL,
		&a.GitHubProfileURL,
		&a.HashedPassword,
		&a.Role,
		&a.EmailVerified,
		&a.VerificationToken,
		&a.FailedLoginAttempts,
		&a.IsLocked,
		&a.CreatedAt,
		&a.UpdatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	if lastLoginAt.Valid {
		t := lastLoginAt.Time.UTC()
		a.LastLoginAt = &t
	}

	return a, nil
}
