package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "lower case", input: "authenticated", want: RoleAuthenticated},
		{name: "upper case", input: "ADMIN", want: RoleAdmin},
		{name: "mixed case with spaces", input: "  Manager ", want: RoleManager},
		{name: "anonymous", input: "anonymous", want: RoleAnonymous},
		{name: "unknown", input: "root", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRole_EnumAndString(t *testing.T) {
	fromEnum, err := NormalizeRole(RoleAuthenticated)
	require.NoError(t, err)
	assert.Equal(t, "AUTHENTICATED", fromEnum.String())

	fromString, err := NormalizeRole("authenticated")
	require.NoError(t, err)
	assert.Equal(t, "AUTHENTICATED", fromString.String())

	_, err = NormalizeRole(42)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRole_IsElevated(t *testing.T) {
	assert.True(t, RoleAdmin.IsElevated())
	assert.True(t, RoleManager.IsElevated())
	assert.False(t, RoleAuthenticated.IsElevated())
	assert.False(t, RoleAnonymous.IsElevated())
}

func TestRole_JSON(t *testing.T) {
	var r Role
	require.NoError(t, json.Unmarshal([]byte(`"manager"`), &r))
	assert.Equal(t, RoleManager, r)

	b, err := json.Marshal(RoleAdmin)
	require.NoError(t, err)
	assert.JSONEq(t, `"ADMIN"`, string(b))

	err = json.Unmarshal([]byte(`"superuser"`), &r)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRole_JSONZeroValueRoundTrip(t *testing.T) {
	b, err := json.Marshal(Role(""))
	require.NoError(t, err)
	assert.JSONEq(t, `""`, string(b))

	r := RoleAdmin
	require.NoError(t, json.Unmarshal(b, &r))
	assert.Equal(t, Role(""), r)
	assert.False(t, r.Valid())

	var resp AccountResponse
	require.NoError(t, json.Unmarshal([]byte(`{"role":""}`), &resp))
	assert.Equal(t, Role(""), resp.Role)
}

func TestRole_ScanAndValue(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan([]byte("admin")))
	assert.Equal(t, RoleAdmin, r)

	require.NoError(t, r.Scan("AUTHENTICATED"))
	assert.Equal(t, RoleAuthenticated, r)

	assert.Error(t, r.Scan(int64(1)))

	v, err := RoleManager.Value()
	require.NoError(t, err)
	assert.Equal(t, "MANAGER", v)

	_, err = Role("nobody").Value()
	assert.Error(t, err)
}

func TestNewAccountResponse_HidesSecrets(t *testing.T) {
	token := "secret-token"
	a := Account{
		Email:             "a@x.com",
		HashedPassword:    "$2a$10$hash",
		VerificationToken: &token,
		Role:              RoleAuthenticated,
	}

	b, err := json.Marshal(NewAccountResponse(a, nil))
	require.NoError(t, err)

	assert.NotContains(t, string(b), "$2a$10$hash")
	assert.NotContains(t, string(b), "secret-token")
	assert.Contains(t, string(b), `"links":[]`)
}

func TestRole_CanAssign(t *testing.T) {
	tests := []struct {
		caller Role
		target Role
		want   bool
	}{
		{caller: RoleAdmin, target: RoleAdmin, want: true},
		{caller: RoleAdmin, target: RoleManager, want: true},
		{caller: RoleManager, target: RoleManager, want: true},
		{caller: RoleManager, target: RoleAuthenticated, want: true},
		{caller: RoleManager, target: RoleAdmin, want: false},
		{caller: RoleAuthenticated, target: RoleAuthenticated, want: false},
		{caller: RoleAnonymous, target: RoleAnonymous, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.caller.String()+"->"+tt.target.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.caller.CanAssign(tt.target))
		})
	}
}
