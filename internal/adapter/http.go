package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const defaultRequestTimeout = 15 * time.Second

type httpServerAdapter struct {
	client *resty.Client
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. address may omit the scheme, in which case http is
// assumed. A non-positive timeout falls back to 15s.
func NewHTTPServerAdapter(address string, timeout time.Duration, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if log == nil {
		log = logger.Nop()
	}

	return &httpServerAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs req to /register and returns
// the created account.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AccountResponse, error) {
	var created models.AccountResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&created).
		Post("/register")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	return created, nil
}

// Login implements [ServerAdapter]. Credentials are sent as the
// "username"/"password" form expected by POST /login; the returned access
// token is stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.TokenResponse, error) {
	var token models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": email,
			"password": password,
		}).
		SetResult(&token).
		Post("/login")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, err
	}
	if token.AccessToken == "" {
		return models.TokenResponse{}, fmt.Errorf("login: empty access token in response")
	}

	h.SetToken(token.AccessToken)
	h.logger.Debug().Str("func", "httpServerAdapter.Login").Str("token_type", token.TokenType).Msg("access token stored")
	return token, nil
}

// VerifyEmail implements [ServerAdapter].
func (h *httpServerAdapter) VerifyEmail(ctx context.Context, email, token string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"email": email,
			"token": token,
		}).
		Get("/verify-email")
	if err != nil {
		return fmt.Errorf("verify email request: %w", err)
	}

	return mapHTTPError(resp)
}

// Me implements [ServerAdapter].
func (h *httpServerAdapter) Me(ctx context.Context) (models.AccountResponse, error) {
	var account models.AccountResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&account).
		Get("/me")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	return account, nil
}

// ListAccounts implements [ServerAdapter].
func (h *httpServerAdapter) ListAccounts(ctx context.Context, skip, limit int) (models.AccountListResponse, error) {
	var page models.AccountListResponse

	resp, err := h.authedRequest(ctx).
		SetQueryParams(map[string]string{
			"skip":  strconv.Itoa(skip),
			"limit": strconv.Itoa(limit),
		}).
		SetResult(&page).
		Get("/users")
	if err != nil {
		return models.AccountListResponse{}, fmt.Errorf("list accounts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountListResponse{}, err
	}

	return page, nil
}

// GetAccount implements [ServerAdapter].
func (h *httpServerAdapter) GetAccount(ctx context.Context, id uuid.UUID) (models.AccountResponse, error) {
	var account models.AccountResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		SetResult(&account).
		Get("/users/{id}")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("get account request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	return account, nil
}

// UnlockAccount implements [ServerAdapter].
func (h *httpServerAdapter) UnlockAccount(ctx context.Context, id uuid.UUID) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		Post("/users/{id}/unlock")
	if err != nil {
		return fmt.Errorf("unlock account request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteAccount implements [ServerAdapter].
func (h *httpServerAdapter) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		Delete("/users/{id}")
	if err != nil {
		return fmt.Errorf("delete account request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [ServerAdapter].
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}
