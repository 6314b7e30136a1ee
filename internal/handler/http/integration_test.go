package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/crypto"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/internal/store"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const integrationPassword = "Str0ng!Pass"

type sqliteEnv struct {
	router   http.Handler
	accounts store.AccountRepository
}

func newSQLiteEnv(t *testing.T) *sqliteEnv {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()

	db, err := store.NewConnect(ctx, config.DB{DSN: "sqlite://:memory:"}, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	storages := store.NewStorages(db, log)
	cfg := &config.StructuredConfig{
		App: config.App{
			TokenSignKey:     "integration-secret",
			TokenAlgorithm:   "HS256",
			TokenIssuer:      "go-user-accounts",
			TokenDuration:    time.Hour,
			MaxLoginAttempts: 5,
			BcryptCost:       bcrypt.MinCost,
			ServerBaseURL:    "http://example.com",
			Version:          "1.0.0",
		},
	}

	services, err := service.NewServices(storages, adapter.NewLogMailAdapter(log), cfg, models.AppBuildInfo{}, log)
	require.NoError(t, err)

	return &sqliteEnv{
		router:   NewHandler(services, config.Server{RequestTimeout: 5 * time.Second}, log).Init(),
		accounts: storages.AccountRepository,
	}
}

func (e *sqliteEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *sqliteEnv) register(t *testing.T, email string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + integrationPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.serve(req)
}

func (e *sqliteEnv) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.serve(req)
}

func (e *sqliteEnv) bearer(t *testing.T, email string) string {
	t.Helper()
	rr := e.login(t, email, integrationPassword)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var token models.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func (e *sqliteEnv) authed(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return e.serve(req)
}

func (e *sqliteEnv) verify(email, token string) *httptest.ResponseRecorder {
	query := url.Values{"email": {email}, "token": {token}}
	return e.serve(httptest.NewRequest(http.MethodGet, "/verify-email?"+query.Encode(), nil))
}

// seedAdmin stores a verified ADMIN directly, there is no HTTP path to one.
func (e *sqliteEnv) seedAdmin(t *testing.T, email string) {
	t.Helper()
	hash, err := crypto.NewBcryptHasher(bcrypt.MinCost).Hash(integrationPassword)
	require.NoError(t, err)

	now := time.Now().UTC()
	_, err = e.accounts.Create(context.Background(), models.Account{
		ID:             uuid.New(),
		Email:          email,
		Nickname:       "root_admin",
		HashedPassword: hash,
		Role:           models.RoleAdmin,
		EmailVerified:  true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
}

func TestSQLite_AccountLifecycle(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()
	const email = "jane@example.com"

	// registration
	rr := env.register(t, email)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created models.AccountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, models.RoleAuthenticated, created.Role)
	assert.False(t, created.EmailVerified)

	rr = env.register(t, email)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email already exists", detailOf(t, rr))

	// unverified accounts cannot log in
	rr = env.login(t, email, integrationPassword)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// verification consumes the token
	stored, err := env.accounts.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationToken)
	verificationToken := *stored.VerificationToken

	rr = env.verify(email, verificationToken)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = env.verify(email, verificationToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	userToken := env.bearer(t, email)

	// an AUTHENTICATED caller cannot use the management routes, even on itself
	rr = env.authed(http.MethodGet, "/users/"+created.ID.String(), userToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.authed(http.MethodGet, "/me", userToken)
	require.Equal(t, http.StatusOK, rr.Code)
	var me models.AccountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, created.ID, me.ID)
	assert.True(t, me.EmailVerified)

	// lockout after five wrong passwords
	for i := range 5 {
		rr = env.login(t, email, "Wr0ng!Pass")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "attempt %d", i+1)
	}
	rr = env.login(t, email, integrationPassword)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, accountLocked, detailOf(t, rr))

	// an admin unlocks, then deletes the account
	env.seedAdmin(t, "admin@example.com")
	adminBearer := env.bearer(t, "admin@example.com")

	rr = env.authed(http.MethodPost, "/users/"+created.ID.String()+"/unlock", adminBearer)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = env.login(t, email, integrationPassword)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.authed(http.MethodDelete, "/users/"+created.ID.String(), adminBearer)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.authed(http.MethodGet, "/users/"+created.ID.String(), adminBearer)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found", detailOf(t, rr))
}
