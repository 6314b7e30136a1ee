package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrUnsupportedSigningMethod is returned by SigningMethod for names outside
// the HMAC family.
var ErrUnsupportedSigningMethod = errors.New("unsupported signing method")

// ErrInvalidAuthorizationHeader is returned by ParseBearerToken when the
// header is not of the form "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

// SigningMethod maps a configured algorithm name (HS256, HS384, HS512) to a
// jwt.SigningMethod. The lookup is case-insensitive.
func SigningMethod(name string) (jwt.SigningMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSigningMethod, name)
	}
}

// GenerateJWTToken creates a signed HMAC JWT token for the given account.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the account ID
//   - Role     (role): the account role in upper case
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// Returns an error if any parameter is empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("accounts", id, models.RoleAdmin, time.Hour, jwt.SigningMethodHS256, "secret")
func GenerateJWTToken(issuer string, accountID uuid.UUID, role models.Role, tokenDuration time.Duration,
	method jwt.SigningMethod, signKey string) (models.Token, error) {
	if issuer == "" || accountID == uuid.Nil || tokenDuration <= 0 || method == nil || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	normalized, err := models.NormalizeRole(role)
	if err != nil {
		return models.Token{}, fmt.Errorf("invalid role for JWT Token: %w", err)
	}

	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: normalized,
	}

	token := jwt.NewWithClaims(method, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, AccountID: accountID, Role: normalized}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification with the given method and sign key
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) parsing into an account ID
//   - Role claim parsing into a known role
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, method jwt.SigningMethod) (models.Token, error) {
	if method == nil {
		return models.Token{}, ErrUnsupportedSigningMethod
	}

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	accountID, err := claims.GetAccountID()
	if err != nil {
		return models.Token{}, err
	}

	role, err := models.NormalizeRole(claims.Role)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting role from token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, AccountID: accountID, Role: role}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}

// ParseClaimsUnverified decodes the claims of a token without checking its
// signature. Only for display on the client side.
func ParseClaimsUnverified(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
