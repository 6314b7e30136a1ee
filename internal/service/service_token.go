package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService is the concrete implementation of TokenService.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// method is the HMAC signing method resolved from the configured algorithm.
	method jwt.SigningMethod

	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the token settings of cfg.
// It fails when cfg.TokenAlgorithm is not one of HS256, HS384 or HS512.
func NewTokenService(cfg config.App, logger *logger.Logger) (TokenService, error) {
	method, err := utils.SigningMethod(cfg.TokenAlgorithm)
	if err != nil {
		return nil, err
	}

	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		method:        method,
		logger:        logger,
	}, nil
}

// CreateToken issues a signed JWT carrying the account id as "sub" and the
// canonical role name as "role". A zero ttl means the configured token
// duration.
func (s *tokenService) CreateToken(ctx context.Context, account models.Account, ttl time.Duration) (models.Token, error) {
	if ttl == 0 {
		ttl = s.tokenDuration
	}

	token, err := utils.GenerateJWTToken(s.tokenIssuer, account.ID, account.Role, ttl, s.method, s.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tokenService.CreateToken").Msg("error generating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT string. Any validation failure (expired,
// wrong issuer or algorithm, malformed, unknown role) is normalised to
// ErrInvalidToken so that callers do not need to inspect low-level JWT errors.
func (s *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer, s.method)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "tokenService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrInvalidToken
	}

	return token, nil
}
