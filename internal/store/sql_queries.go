package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
)

const usersTable = "users"

// accountColumns is the column order shared by every SELECT and by scanAccount.
var accountColumns = []string{
	"id",
	"email",
	"nickname",
	"first_name",
	"last_name",
	"bio",
	"profile_picture_url",
	"linkedin_profile_url",
	"github_profile_url",
	"hashed_password",
	"role",
	"email_verified",
	"verification_token",
	"failed_login_attempts",
	"is_locked",
	"created_at",
	"updated_at",
	"last_login_at",
}

func buildSelectAccountQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(accountColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
}

func buildInsertAccountQuery(b sq.StatementBuilderType, a models.Account) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(accountColumns...).
		Values(
			a.ID,
			a.Email,
			a.Nickname,
			a.FirstName,
			a.LastName,
			a.Bio,
			a.ProfilePictureURL,
			a.LinkedInProfileURL,
			a.GitHubProfileURL,
			a.HashedPassword,
			a.Role,
			a.EmailVerified,
			a.VerificationToken,
			a.FailedLoginAttempts,
			a.IsLocked,
			a.CreatedAt,
			a.UpdatedAt,
			a.LastLoginAt,
		).
		ToSql()
}

// buildUpdateAccountQuery sets only the non-nil fields of update.
func buildUpdateAccountQuery(b sq.StatementBuilderType, id uuid.UUID, update models.AccountUpdate, now time.Time) (string, []any, error) {
	query := b.Update(usersTable).Set("updated_at", now)

	if update.Email != nil {
		query = query.Set("email", *update.Email)
	}
	if update.Nickname != nil {
		query = query.Set("nickname", *update.Nickname)
	}
	if update.FirstName != nil {
		query = query.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		query = query.Set("last_name", *update.LastName)
	}
	if update.Bio != nil {
		query = query.Set("bio", *update.Bio)
	}
	if update.ProfilePictureURL != nil {
		query = query.Set("profile_picture_url", *update.ProfilePictureURL)
	}
	if update.LinkedInProfileURL != nil {
		query = query.Set("linkedin_profile_url", *update.LinkedInProfileURL)
	}
	if update.GitHubProfileURL != nil {
		query = query.Set("github_profile_url", *update.GitHubProfileURL)
	}
	if update.HashedPassword != nil {
		query = query.Set("hashed_password", *update.HashedPassword)
	}
	if update.Role != nil {
		query = query.Set("role", *update.Role)
	}

	return query.Where(sq.Eq{"id": id}).ToSql()
}

func buildDeleteAccountQuery(b sq.StatementBuilderType, id uuid.UUID) (string, []any, error) {
	return b.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
}

func buildListAccountsQuery(b sq.StatementBuilderType, offset, limit int) (string, []any, error) {
	return b.Select(accountColumns...).
		From(usersTable).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func buildCountAccountsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("COUNT(*)").From(usersTable).ToSql()
}

// buildRegisterFailedLoginQuery increments the counter and evaluates the lock
// condition against the pre-update counter in the same statement.
func buildRegisterFailedLoginQuery(b sq.StatementBuilderType, id uuid.UUID, maxAttempts int, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("failed_login_attempts", sq.Expr("failed_login_attempts + 1")).
		Set("is_locked", sq.Expr("is_locked OR failed_login_attempts + 1 >= ?", maxAttempts)).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING failed_login_attempts, is_locked").
		ToSql()
}

func buildRecordSuccessfulLoginQuery(b sq.StatementBuilderType, id uuid.UUID, at time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("failed_login_attempts", 0).
		Set("last_login_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildConsumeVerificationTokenQuery(b sq.StatementBuilderType, email, token string, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("email_verified", true).
		Set("verification_token", nil).
		Set("updated_at", now).
		Where(sq.Eq{"email": email, "verification_token": token}).
		ToSql()
}

func buildResetPasswordQuery(b sq.StatementBuilderType, id uuid.UUID, hashedPassword string, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("hashed_password", hashedPassword).
		Set("failed_login_attempts", 0).
		Set("is_locked", false).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildUnlockQuery(b sq.StatementBuilderType, id uuid.UUID, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("is_locked", false).
		Set("failed_login_attempts", 0).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, "is_locked": true}).
		ToSql()
}
