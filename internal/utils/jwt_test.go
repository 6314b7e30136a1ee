package utils

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "test-issuer"
	testKey    = "secret-key"
)

func TestSigningMethod(t *testing.T) {
	for name, want := range map[string]jwt.SigningMethod{
		"HS256":  jwt.SigningMethodHS256,
		"hs384":  jwt.SigningMethodHS384,
		" HS512": jwt.SigningMethodHS512,
	} {
		got, err := SigningMethod(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := SigningMethod("RS256")
	assert.ErrorIs(t, err, ErrUnsupportedSigningMethod)
}

func TestGenerateJWTToken_Success(t *testing.T) {
	id := uuid.New()

	token, err := GenerateJWTToken(testIssuer, id, models.Role("authenticated"), time.Hour, jwt.SigningMethodHS256, testKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)
	assert.Equal(t, token.SignedString, token.String())
	assert.Equal(t, models.RoleAuthenticated, token.Role)

	claims, ok := token.Token.Claims.(*models.Claims)
	require.True(t, ok)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, models.RoleAuthenticated, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

// TestGenerateJWTToken_RoleClaimIsUpperCase decodes the payload without
// verification and checks the raw "role" value.
func TestGenerateJWTToken_RoleClaimIsUpperCase(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, uuid.New(), models.RoleAdmin, time.Minute, jwt.SigningMethodHS512, testKey)
	require.NoError(t, err)

	mapClaims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token.SignedString, mapClaims)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", mapClaims["role"])
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name     string
		issuer   string
		id       uuid.UUID
		role     models.Role
		duration time.Duration
		method   jwt.SigningMethod
		key      string
	}{
		{"empty issuer", "", id, models.RoleAdmin, time.Hour, jwt.SigningMethodHS256, "key"},
		{"nil id", "iss", uuid.Nil, models.RoleAdmin, time.Hour, jwt.SigningMethodHS256, "key"},
		{"zero duration", "iss", id, models.RoleAdmin, 0, jwt.SigningMethodHS256, "key"},
		{"nil method", "iss", id, models.RoleAdmin, time.Hour, nil, "key"},
		{"empty key", "iss", id, models.RoleAdmin, time.Hour, jwt.SigningMethodHS256, ""},
		{"unknown role", "iss", id, models.Role("root"), time.Hour, jwt.SigningMethodHS256, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.id, tt.role, tt.duration, tt.method, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	id := uuid.New()
	generated, err := GenerateJWTToken(testIssuer, id, models.RoleManager, 5*time.Minute, jwt.SigningMethodHS384, testKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, testKey, testIssuer, jwt.SigningMethodHS384)
	require.NoError(t, err)
	assert.Equal(t, id, parsed.AccountID)
	assert.Equal(t, models.RoleManager, parsed.Role)
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	id := uuid.New()
	valid, err := GenerateJWTToken(testIssuer, id, models.RoleAuthenticated, time.Hour, jwt.SigningMethodHS256, testKey)
	require.NoError(t, err)

	expiredClaims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		Role: models.RoleAuthenticated,
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testKey))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": testIssuer, "sub": id.String(), "role": "ADMIN",
	}).SignedString([]byte(testKey))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": testIssuer, "sub": "42", "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testKey))
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": testIssuer, "sub": id.String(), "role": "ROOT", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testKey))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
		method jwt.SigningMethod
	}{
		{"wrong key", valid.SignedString, "wrong-key", testIssuer, jwt.SigningMethodHS256},
		{"wrong issuer", valid.SignedString, testKey, "fake-issuer", jwt.SigningMethodHS256},
		{"algorithm mismatch", valid.SignedString, testKey, testIssuer, jwt.SigningMethodHS512},
		{"nil method", valid.SignedString, testKey, testIssuer, nil},
		{"expired", expired, testKey, testIssuer, jwt.SigningMethodHS256},
		{"missing exp", noExp, testKey, testIssuer, jwt.SigningMethodHS256},
		{"subject is not a uuid", badSubject, testKey, testIssuer, jwt.SigningMethodHS256},
		{"unknown role", badRole, testKey, testIssuer, jwt.SigningMethodHS256},
		{"malformed", "not.a.token", testKey, testIssuer, jwt.SigningMethodHS256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer, tt.method)
			assert.Error(t, err)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ParseBearerToken("  bearer   abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(header)
		assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader, header)
	}
}

func TestParseClaimsUnverified(t *testing.T) {
	id := uuid.New()
	token, err := GenerateJWTToken(testIssuer, id, models.RoleAdmin, time.Hour, jwt.SigningMethodHS256, testKey)
	require.NoError(t, err)

	claims, err := ParseClaimsUnverified(token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, id.String(), claims.Subject)

	_, err = ParseClaimsUnverified("garbage")
	assert.Error(t, err)
}
