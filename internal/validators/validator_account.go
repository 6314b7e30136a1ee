package validators

import (
	"context"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-user-accounts/models"
)

const (
	FieldEmail              = "email"
	FieldPassword           = "password"
	FieldNickname           = "nickname"
	FieldFirstName          = "first_name"
	FieldLastName           = "last_name"
	FieldBio                = "bio"
	FieldProfilePictureURL  = "profile_picture_url"
	FieldLinkedInProfileURL = "linkedin_profile_url"
	FieldGitHubProfileURL   = "github_profile_url"
	FieldRole               = "role"
	FieldBody               = "body"
)

const (
	minNicknameLength = 3
	minPasswordLength = 8
	maxPasswordLength = 72
	maxNameLength     = 100
	maxBioLength      = 500
)

var nicknamePattern = regexp.MustCompile(`^[\w-]+$`)

type AccountValidator struct {
}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.CreateAccountRequest:
		return v.validateCreateRequest(value, fields...)
	case *models.CreateAccountRequest:
		return v.validateCreateRequest(*value, fields...)

	case models.UpdateAccountRequest:
		return v.validateUpdateRequest(value, fields...)
	case *models.UpdateAccountRequest:
		return v.validateUpdateRequest(*value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(value)
	case *models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateRegisterRequest(request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{
			FieldEmail, FieldPassword, FieldNickname, FieldFirstName, FieldLastName, FieldBio,
			FieldProfilePictureURL, FieldLinkedInProfileURL, FieldGitHubProfileURL,
		}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldEmail:
			checkEmail(verr, request.Email)
		case FieldPassword:
			checkPassword(verr, request.Password)
		case FieldNickname:
			if request.Nickname != nil {
				checkNickname(verr, *request.Nickname)
			}
		case FieldFirstName:
			checkLength(verr, FieldFirstName, request.FirstName, maxNameLength)
		case FieldLastName:
			checkLength(verr, FieldLastName, request.LastName, maxNameLength)
		case FieldBio:
			checkLength(verr, FieldBio, request.Bio, maxBioLength)
		case FieldProfilePictureURL:
			checkURL(verr, FieldProfilePictureURL, request.ProfilePictureURL)
		case FieldLinkedInProfileURL:
			checkURL(verr, FieldLinkedInProfileURL, request.LinkedInProfileURL)
		case FieldGitHubProfileURL:
			checkURL(verr, FieldGitHubProfileURL, request.GitHubProfileURL)
		default:
			return ErrUnknownField
		}
	}

	return verr.orNil()
}

func (v *AccountValidator) validateCreateRequest(request models.CreateAccountRequest, fields ...string) error {
	verr := &ValidationError{}

	if err := v.validateRegisterRequest(request.RegisterRequest, fields...); err != nil {
		ve, ok := err.(*ValidationError)
		if !ok {
			return err
		}
		verr.Fields = append(verr.Fields, ve.Fields...)
	}

	if request.Role != "" {
		checkRole(verr, request.Role)
	}

	return verr.orNil()
}

func (v *AccountValidator) validateUpdateRequest(request models.UpdateAccountRequest, fields ...string) error {
	verr := &ValidationError{}
	if request.IsEmpty() {
		verr.add(FieldBody, "At least one field must be provided")
		return verr
	}

	if len(fields) == 0 {
		fields = []string{
			FieldEmail, FieldPassword, FieldNickname, FieldFirstName, FieldLastName, FieldBio,
			FieldProfilePictureURL, FieldLinkedInProfileURL, FieldGitHubProfileURL, FieldRole,
		}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if request.Email != nil {
				checkEmail(verr, *request.Email)
			}
		case FieldPassword:
			if request.Password != nil {
				checkPassword(verr, *request.Password)
			}
		case FieldNickname:
			if request.Nickname != nil {
				checkNickname(verr, *request.Nickname)
			}
		case FieldFirstName:
			checkLength(verr, FieldFirstName, request.FirstName, maxNameLength)
		case FieldLastName:
			checkLength(verr, FieldLastName, request.LastName, maxNameLength)
		case FieldBio:
			checkLength(verr, FieldBio, request.Bio, maxBioLength)
		case FieldProfilePictureURL:
			checkURL(verr, FieldProfilePictureURL, request.ProfilePictureURL)
		case FieldLinkedInProfileURL:
			checkURL(verr, FieldLinkedInProfileURL, request.LinkedInProfileURL)
		case FieldGitHubProfileURL:
			checkURL(verr, FieldGitHubProfileURL, request.GitHubProfileURL)
		case FieldRole:
			if request.Role != nil {
				checkRole(verr, *request.Role)
			}
		default:
			return ErrUnknownField
		}
	}

	return verr.orNil()
}

func (v *AccountValidator) validateResetPasswordRequest(request models.ResetPasswordRequest) error {
	verr := &ValidationError{}
	checkPassword(verr, request.Password)
	return verr.orNil()
}

func checkEmail(verr *ValidationError, email string) {
	if email == "" {
		verr.add(FieldEmail, "field required")
		return
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		verr.add(FieldEmail, "value is not a valid email address")
		return
	}

	at := strings.LastIndex(email, "@")
	if domain := email[at+1:]; !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		verr.add(FieldEmail, "value is not a valid email address")
	}
}

func checkPassword(verr *ValidationError, password string) {
	if len(password) < minPasswordLength {
		verr.add(FieldPassword, "password must be at least 8 characters long")
		return
	}
	if len(password) > maxPasswordLength {
		verr.add(FieldPassword, "password must be at most 72 bytes long")
		return
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}

	if !upper || !lower || !digit || !special {
		verr.add(FieldPassword, "password must contain upper and lower case letters, a digit and a special character")
	}
}

func checkNickname(verr *ValidationError, nickname string) {
	if len([]rune(nickname)) < minNicknameLength {
		verr.add(FieldNickname, "nickname must be at least 3 characters long")
		return
	}
	if !nicknamePattern.MatchString(nickname) {
		verr.add(FieldNickname, "nickname may contain only letters, digits, underscores and dashes")
	}
}

func checkLength(verr *ValidationError, field string, value *string, max int) {
	if value != nil && len([]rune(*value)) > max {
		verr.add(field, "value is too long")
	}
}

func checkURL(verr *ValidationError, field string, value *string) {
	if value == nil {
		return
	}

	u, err := url.Parse(*value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		verr.add(field, "URL must be a valid http or https URL")
	}
}

func checkRole(verr *ValidationError, role models.Role) {
	if !role.Valid() {
		verr.add(FieldRole, "unknown role")
		return
	}
	if role.String() == models.RoleAnonymous.String() {
		verr.add(FieldRole, "ANONYMOUS cannot be assigned to an account")
	}
}
