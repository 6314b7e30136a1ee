package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/mock"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type consoleFunc func(ctx context.Context) error

func (f consoleFunc) Run(ctx context.Context) error { return f(ctx) }

func newTestApp(t *testing.T, ctrl *gomock.Controller, console Console) (*App, *mock.MockServerAdapter, *bytes.Buffer) {
	t.Helper()
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	out := &bytes.Buffer{}
	return NewApp(serverAdapter, console, out, logger.Nop()), serverAdapter, out
}

func sampleAccount() models.AccountResponse {
	return models.AccountResponse{
		ID:            uuid.MustParse("0195a6d4-0000-7000-8000-000000000003"),
		Email:         "jane@example.com",
		Nickname:      "jane",
		Role:          models.RoleAuthenticated,
		EmailVerified: true,
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestApp_Usage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, out := newTestApp(t, ctrl, nil)

	require.NoError(t, app.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "usage: accountctl")

	out.Reset()
	err := app.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, out.String(), "usage: accountctl")
}

func TestApp_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, serverAdapter, out := newTestApp(t, ctrl, nil)
	nickname := "janey"

	serverAdapter.EXPECT().
		Register(gomock.Any(), models.RegisterRequest{Email: "jane@example.com", Password: "Str0ng!Pass", Nickname: &nickname}).
		Return(sampleAccount(), nil)

	err := app.Run(context.Background(), []string{"register", "-email", "jane@example.com", "-password", "Str0ng!Pass", "-nickname", "janey"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "check your inbox")
	assert.Contains(t, out.String(), "jane@example.com")
	assert.Contains(t, out.String(), "AUTHENTICATED")
}

func TestApp_Register_MissingFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, serverAdapter, _ := newTestApp(t, ctrl, nil)
	serverAdapter.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

	err := app.Run(context.Background(), []string{"register"})
	require.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), "-email, -password")
}

func TestApp_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, serverAdapter, out := newTestApp(t, ctrl, nil)

	gomock.InOrder(
		serverAdapter.EXPECT().Login(gomock.Any(), "jane@example.com", "Str0ng!Pass").
			Return(models.TokenResponse{AccessToken: "signed.jwt", TokenType: "bearer"}, nil),
		serverAdapter.EXPECT().Login(gomock.Any(), "jane@example.com", "wrong").
			Return(models.TokenResponse{}, fmt.Errorf("%w: Incorrect email or password.", adapter.ErrUnauthorized)),
	)

	require.NoError(t, app.Run(context.Background(), []string{"login", "-email", "jane@example.com", "-password", "Str0ng!Pass"}))
	assert.Equal(t, "signed.jwt\n", out.String())

	err := app.Run(context.Background(), []string{"login", "-email", "jane@example.com", "-password", "wrong"})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestApp_Login_Claims(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, serverAdapter, out := newTestApp(t, ctrl, nil)

	token, err := utils.GenerateJWTToken("accounts", uuid.New(), models.RoleManager, time.Hour, jwt.SigningMethodHS256, "secret")
	require.NoError(t, err)
	gomock.InOrder(
		serverAdapter.EXPECT().Login(gomock.Any(), "jane@example.com", "Str0ng!Pass").
			Return(models.TokenResponse{AccessToken: token.SignedString, TokenType: "bearer"}, nil),
		serverAdapter.EXPECT().Login(gomock.Any(), "jane@example.com", "Str0ng!Pass").
			Return(models.TokenResponse{AccessToken: "not-a-jwt", TokenType: "bearer"}, nil),
	)

	require.NoError(t, app.Run(context.Background(), []string{"login", "-email", "jane@example.com", "-password", "Str0ng!Pass", "-claims"}))
	assert.Contains(t, out.String(), token.SignedString+"\n")
	assert.Contains(t, out.String(), "role:    MANAGER\n")
	assert.Contains(t, out.String(), "expires: ")

	err = app.Run(context.Background(), []string{"login", "-email", "jane@example.com", "-password", "Str0ng!Pass", "-claims"})
	assert.Error(t, err)
}

func TestApp_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, serverAdapter, out := newTestApp(t, ctrl, nil)
	serverAdapter.EXPECT().VerifyEmail(gomock.Any(), "jane@example.com", "tok").Return(nil)

	require.NoError(t, app.Run(context.Background(), []string{"verify", "-email", "jane@example.com", "-token", "tok"}))
	assert.Contains(t, out.String(), "email verified")
}

func TestApp_Me_UsesTokenFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, serverAdapter, out := newTestApp(t, ctrl, nil)
	gomock.InOrder(
		serverAdapter.EXPECT().SetToken("flag-token"),
		serverAdapter.EXPECT().Me(gomock.Any()).Return(sampleAccount(), nil),
	)

	require.NoError(t, app.Run(context.Background(), []string{"me", "-token", "flag-token"}))
	assert.Contains(t, out.String(), "jane@example.com")
}

func TestApp_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, serverAdapter, out := newTestApp(t, ctrl, nil)
	serverAdapter.EXPECT().ListAccounts(gomock.Any(), 10, 5).Return(models.AccountListResponse{
		Items: []models.AccountResponse{sampleAccount()},
		Total: 11,
		Page:  3,
		Size:  5,
	}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"list", "-skip", "10", "-limit", "5"}))
	assert.Contains(t, out.String(), "EMAIL")
	assert.Contains(t, out.String(), "jane@example.com")
	assert.Contains(t, out.String(), "page 3, 1 of 11 accounts")
}

func TestApp_AccountIDCommands(t *testing.T) {
	id := uuid.MustParse("0195a6d4-0000-7000-8000-000000000009")

	t.Run("get", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app, serverAdapter, out := newTestApp(t, ctrl, nil)
		serverAdapter.EXPECT().GetAccount(gomock.Any(), id).Return(sampleAccount(), nil)

		require.NoError(t, app.Run(context.Background(), []string{"get", id.String()}))
		assert.Contains(t, out.String(), "jane")
	})

	t.Run("unlock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app, serverAdapter, out := newTestApp(t, ctrl, nil)
		serverAdapter.EXPECT().UnlockAccount(gomock.Any(), id).Return(nil)

		require.NoError(t, app.Run(context.Background(), []string{"unlock", id.String()}))
		assert.Contains(t, out.String(), "unlocked")
	})

	t.Run("delete forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app, serverAdapter, _ := newTestApp(t, ctrl, nil)
		serverAdapter.EXPECT().DeleteAccount(gomock.Any(), id).Return(fmt.Errorf("%w: Operation not permitted", adapter.ErrForbidden))

		err := app.Run(context.Background(), []string{"delete", id.String()})
		assert.ErrorIs(t, err, adapter.ErrForbidden)
	})

	t.Run("missing id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app, _, _ := newTestApp(t, ctrl, nil)
		assert.ErrorIs(t, app.Run(context.Background(), []string{"get"}), ErrMissingArgument)
	})

	t.Run("malformed id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app, _, _ := newTestApp(t, ctrl, nil)
		assert.ErrorIs(t, app.Run(context.Background(), []string{"unlock", "42"}), ErrInvalidAccountID)
	})
}

func TestApp_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, serverAdapter, out := newTestApp(t, ctrl, nil)
	serverAdapter.EXPECT().Version(gomock.Any()).Return("1.2.3", nil)

	require.NoError(t, app.Run(context.Background(), []string{"version"}))
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestApp_Console(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app, _, _ := newTestApp(t, ctrl, nil)
		assert.ErrorIs(t, app.Run(context.Background(), []string{"console"}), ErrNoConsole)
	})

	t.Run("delegates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		errDone := errors.New("console closed")
		app, _, _ := newTestApp(t, ctrl, consoleFunc(func(context.Context) error { return errDone }))
		assert.ErrorIs(t, app.Run(context.Background(), []string{"console"}), errDone)
	})
}
