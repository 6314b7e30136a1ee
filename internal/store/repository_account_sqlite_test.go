package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteAccountRepo(t *testing.T) AccountRepository {
	t.Helper()

	db, err := NewConnect(context.Background(), config.DB{DSN: "sqlite://:memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return NewAccountRepository(db, logger.Nop())
}

func newStoredAccount(email, nickname string, createdAt time.Time) models.Account {
	token := "token-" + nickname
	return models.Account{
		ID:                uuid.New(),
		Email:             email,
		Nickname:          nickname,
		HashedPassword:    "hash",
		Role:              models.RoleAuthenticated,
		VerificationToken: &token,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func TestSQLiteAccountRepository_CreateAndFind(t *testing.T) {
	repo := newSQLiteAccountRepo(t)
	ctx := context.Background()

	account := newStoredAccount("john@example.com", "john_doe", fixedNow)
	_, err := repo.Create(ctx, account)
	require.NoError(t, err)

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Email, byID.Email)
	assert.Equal(t, models.RoleAuthenticated, byID.Role)
	assert.False(t, byID.EmailVerified)
	require.NotNil(t, byID.VerificationToken)
	assert.True(t, byID.CreatedAt.Equal(fixedNow))

	byEmail, err := repo.FindByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)

	byNickname, err := repo.FindByNickname(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byNickname.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestSQLiteAccountRepository_UniqueViolations(t *testing.T) {
	repo := newSQLiteAccountRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newStoredAccount("john@example.com", "john_doe", fixedNow))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newStoredAccount("john@example.com", "other", fixedNow))
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = repo.Create(ctx, newStoredAccount("other@example.com", "john_doe", fixedNow))
	assert.ErrorIs(t, err, ErrNicknameAlreadyExists)

	second := newStoredAccount("jane@example.com", "jane", fixedNow)
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	taken := "john@example.com"
	_, err = repo.Update(ctx, second.ID, models.AccountUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSQLiteAccountRepository_LockoutAfterMaxAttempts(t *testing.T) {
	repo := newSQLiteAccountRepo(t)
	ctx := context.Background()

	account := newStoredAccount("john@example.com", "john_doe", fixedNow)
	_, err := repo.Create(ctx, account)
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		attempts, locked, err := repo.RegisterFailedLogin(ctx, account.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, i, attempts)
		assert.False(t, locked, "attempt %d must not lock", i)
	}

	attempts, locked, err := repo.RegisterFailedLogin(ctx, account.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, attempts)
	assert.True(t, locked)

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsLocked)

	unlocked, err := repo.Unlock(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, unlocked)

	again, err := repo.Unlock(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, again)

	stored, err = repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsLocked)
	assert.Zero(t, stored.FailedLoginAttempts)
}

func TestSQLiteAccountRepository_RecordSuccessfulLogin(t *testing.T) {
	repo := newSQLiteAccountRepo(t)
	ctx := context.Background()

	account := newStoredAccount("john@example.com", "john_doe", fixedNow)
	_, err := repo.Create(ctx, account)
	require.NoError(t, err)

	_, _, err = repo.RegisterFailedLogin(ctx, account.ID, 5)
	require.NoError(t, err)

	loginAt := fixedNow.Add(time.Hour)
	require.NoError(t, repo.RecordSuccessfulLogin(ctx, account.ID, loginAt))

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.FailedLoginAttempts)
	require.NotNil(t, stored.LastLoginAt)
	assert.True(t, stored.LastLoginAt.Equal(loginAt))

	assert.ErrorIs(t, repo.RecordSuccessfulLogin(ctx, uuid.New(), loginAt), ErrAccountNotFound)
}

func TestSQLiteAccountRepository_ConsumeVerificationTokenOnce(t *testing.T) {
	repo := newSQLiteAccountRepo(t)
	ctx := context.Background()

	account := newStoredAccount("john@example.com", "john_doe", fixedNow)
	_, err := repo.Create(ctx, account)
	require.NoError(t, err)

	ok, err := repo.ConsumeVerificationToken(ctx, "john@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ConsumeVerificationToken(ctx, "john@example.com", *account.VerificationToken)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ConsumeVerificationToken(ctx, "john@example.com", *account.VerificationToken)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, stored.EmailVerified)
	assert.Nil(t, stored.VerificationToken)
}

func TestSQLiteAccountRepository_ResetPasswordUnlocks(t *testing.T) {
	repo := newSQLiteAccountRepo(t)
	ctx := context.Background()

	account := newStoredAccount("john@example.com", "john_doe", fixedNow)
	_, err := repo.Create(ctx, account)
	require.NoError(t, err)

	for range 3 {
		_, _, err = repo.RegisterFailedLogin(ctx, account.ID, 3)
		require.NoError(t, err)
	}

	ok, err := repo.ResetPassword(ctx, account.ID, "new-hash")
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", stored.HashedPassword)
	assert.False(t, stored.IsLocked)
	assert.Zero(t, stored.FailedLoginAttempts)

	ok, err = repo.ResetPassword(ctx, uuid.New(), "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteAccountRepository_UpdateListCountDelete(t *testing.T) {
	repo := newSQLiteAccountRepo(t)
	ctx := context.Background()

	ids := make([]uuid.UUID, 0, 3)
	for i := range 3 {
		account := newStoredAccount(
			fmt.Sprintf("user%d@example.com", i),
			fmt.Sprintf("user_%d", i),
			fixedNow.Add(time.Duration(i)*time.Minute),
		)
		_, err := repo.Create(ctx, account)
		require.NoError(t, err)
		ids = append(ids, account.ID)
	}

	bio := "hello"
	role := models.RoleManager
	updated, err := repo.Update(ctx, ids[1], models.AccountUpdate{Bio: &bio, Role: &role})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "hello", *updated.Bio)
	assert.Equal(t, models.RoleManager, updated.Role)
	assert.Equal(t, "user1@example.com", updated.Email)

	_, err = repo.Update(ctx, uuid.New(), models.AccountUpdate{Bio: &bio})
	assert.ErrorIs(t, err, ErrAccountNotFound)

	page, err := repo.List(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].ID)
	assert.Equal(t, ids[2], page[1].ID)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	require.NoError(t, repo.Delete(ctx, ids[0]))
	assert.ErrorIs(t, repo.Delete(ctx, ids[0]), ErrAccountNotFound)

	total, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
