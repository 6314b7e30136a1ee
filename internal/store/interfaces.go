package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists accounts. Every method is a single atomic
// statement (or a single transaction) so no partial state is visible after
// an error.
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	FindByNickname(ctx context.Context, nickname string) (models.Account, error)

	// Create inserts a new account. Unique violations map to
	// ErrEmailAlreadyExists / ErrNicknameAlreadyExists.
	Create(ctx context.Context, account models.Account) (models.Account, error)
	// Update applies the non-nil fields of update and bumps updated_at.
	Update(ctx context.Context, id uuid.UUID, update models.AccountUpdate) (models.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns accounts ordered by creation time, then id.
	List(ctx context.Context, offset, limit int) ([]models.Account, error)
	Count(ctx context.Context) (int64, error)

	// RegisterFailedLogin increments the failure counter and locks the
	// account once the counter reaches maxAttempts, in one statement.
	RegisterFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int) (attempts int, locked bool, err error)
	// RecordSuccessfulLogin resets the failure counter and stamps last_login_at.
	RecordSuccessfulLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// ConsumeVerificationToken marks the email verified and clears the token
	// if (email, token) matches. Reports whether a row was updated.
	ConsumeVerificationToken(ctx context.Context, email, token string) (bool, error)
	// ResetPassword stores a new hash, clears the counter and unlocks.
	ResetPassword(ctx context.Context, id uuid.UUID, hashedPassword string) (bool, error)
	// Unlock clears the lock and the counter of a locked account. Reports
	// false when the account was not locked.
	Unlock(ctx context.Context, id uuid.UUID) (bool, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ErrorClassificator decides how the DB layer reacts to driver errors.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification
	// UniqueViolation reports whether err is a unique-constraint violation
	// and returns the constraint (or column) description.
	UniqueViolation(err error) (string, bool)
}
