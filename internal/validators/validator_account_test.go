// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:              "john.doe@example.com",
		Password:           "Secure*1234",
		Nickname:           ptr("john_doe-1"),
		FirstName:          ptr("John"),
		ProfilePictureURL:  ptr("https://example.com/profiles/john.jpg"),
		LinkedInProfileURL: ptr("https://linkedin.com/in/johndoe"),
		GitHubProfileURL:   ptr("http://github.com/johndoe"),
	}
}

// fieldsOf returns the names of rejected fields.
func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrValidation)

	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := NewAccountValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidate_UnknownField(t *testing.T) {
	err := NewAccountValidator().Validate(context.Background(), validRegisterRequest(), "shoe_size")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestValidateRegisterRequest(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	tests := []struct {
		name       string
		mutate     func(r *models.RegisterRequest)
		wantFields []string
	}{
		{name: "valid", mutate: func(r *models.RegisterRequest) {}},
		{name: "valid pointer without optionals", mutate: func(r *models.RegisterRequest) {
			*r = models.RegisterRequest{Email: "a@b.io", Password: "Passw0rd!"}
		}},
		{name: "missing email", mutate: func(r *models.RegisterRequest) { r.Email = "" }, wantFields: []string{FieldEmail}},
		{name: "malformed email", mutate: func(r *models.RegisterRequest) { r.Email = "notanemail" }, wantFields: []string{FieldEmail}},
		{name: "email with display name", mutate: func(r *models.RegisterRequest) { r.Email = "John <john@example.com>" }, wantFields: []string{FieldEmail}},
		{name: "email without tld", mutate: func(r *models.RegisterRequest) { r.Email = "john@localhost" }, wantFields: []string{FieldEmail}},
		{name: "short password", mutate: func(r *models.RegisterRequest) { r.Password = "Ab1!" }, wantFields: []string{FieldPassword}},
		{name: "long password", mutate: func(r *models.RegisterRequest) { r.Password = "Ab1!" + strings.Repeat("x", 70) }, wantFields: []string{FieldPassword}},
		{name: "password without special", mutate: func(r *models.RegisterRequest) { r.Password = "Secure1234" }, wantFields: []string{FieldPassword}},
		{name: "password without upper", mutate: func(r *models.RegisterRequest) { r.Password = "secure*1234" }, wantFields: []string{FieldPassword}},
		{name: "short nickname", mutate: func(r *models.RegisterRequest) { r.Nickname = ptr("ab") }, wantFields: []string{FieldNickname}},
		{name: "nickname with spaces", mutate: func(r *models.RegisterRequest) { r.Nickname = ptr("john doe") }, wantFields: []string{FieldNickname}},
		{name: "ftp url", mutate: func(r *models.RegisterRequest) { r.GitHubProfileURL = ptr("ftp://github.com/x") }, wantFields: []string{FieldGitHubProfileURL}},
		{name: "url without host", mutate: func(r *models.RegisterRequest) { r.ProfilePictureURL = ptr("https://") }, wantFields: []string{FieldProfilePictureURL}},
		{name: "long bio", mutate: func(r *models.RegisterRequest) { r.Bio = ptr(strings.Repeat("b", 501)) }, wantFields: []string{FieldBio}},
		{
			name: "several problems reported together",
			mutate: func(r *models.RegisterRequest) {
				r.Email = "bad"
				r.Password = "short"
				r.LinkedInProfileURL = ptr("linkedin")
			},
			wantFields: []string{FieldEmail, FieldPassword, FieldLinkedInProfileURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := v.Validate(ctx, &req)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, fieldsOf(t, err))
		})
	}
}

func TestValidateRegisterRequest_FieldScoping(t *testing.T) {
	req := validRegisterRequest()
	req.Password = "weak"

	err := NewAccountValidator().Validate(context.Background(), req, FieldEmail)
	assert.NoError(t, err)
}

func TestValidateCreateRequest(t *testing.T) {
	v := NewAccountValidator()

	req := models.CreateAccountRequest{RegisterRequest: validRegisterRequest(), Role: models.RoleManager}
	require.NoError(t, v.Validate(context.Background(), req))

	req.Role = ""
	require.NoError(t, v.Validate(context.Background(), &req))

	req.Role = "SUPERUSER"
	assert.Equal(t, []string{FieldRole}, fieldsOf(t, v.Validate(context.Background(), req)))

	req.Role = models.RoleAnonymous
	req.Email = "nope"
	assert.Equal(t, []string{FieldEmail, FieldRole}, fieldsOf(t, v.Validate(context.Background(), req)))
}

func TestValidateUpdateRequest(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	t.Run("empty update", func(t *testing.T) {
		err := v.Validate(ctx, models.UpdateAccountRequest{})
		assert.Equal(t, []string{FieldBody}, fieldsOf(t, err))
	})

	t.Run("single valid field", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.UpdateAccountRequest{Bio: ptr("Go developer")}))
	})

	t.Run("invalid url and role", func(t *testing.T) {
		role := models.Role("GOD")
		err := v.Validate(ctx, &models.UpdateAccountRequest{
			ProfilePictureURL: ptr("javascript:alert(1)"),
			Role:              &role,
		})
		assert.Equal(t, []string{FieldProfilePictureURL, FieldRole}, fieldsOf(t, err))
	})

	t.Run("password re-hash candidate must be strong", func(t *testing.T) {
		err := v.Validate(ctx, models.UpdateAccountRequest{Password: ptr("password")})
		assert.Equal(t, []string{FieldPassword}, fieldsOf(t, err))
	})
}

func TestValidateResetPasswordRequest(t *testing.T) {
	v := NewAccountValidator()

	require.NoError(t, v.Validate(context.Background(), models.ResetPasswordRequest{Password: "NewPass#2024"}))
	assert.Equal(t, []string{FieldPassword}, fieldsOf(t, v.Validate(context.Background(), &models.ResetPasswordRequest{})))
}

func TestValidationError_Message(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.orNil())

	verr.add(FieldEmail, "bad")
	verr.add(FieldPassword, "weak")
	assert.Equal(t, "validation failed: email: bad; password: weak", verr.Error())
}
