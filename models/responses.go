package models

import (
	"time"

	"github.com/google/uuid"
)

// Link is a hypermedia link attached to API responses.
type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

// AccountResponse is the outward-facing projection of [Account]. It never
// carries the password hash or the verification token.
type AccountResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	Nickname           string     `json:"nickname"`
	FirstName          *string    `json:"first_name"`
	LastName           *string    `json:"last_name"`
	Bio                *string    `json:"bio"`
	ProfilePictureURL  *string    `json:"profile_picture_url"`
	LinkedInProfileURL *string    `json:"linkedin_profile_url"`
	GitHubProfileURL   *string    `json:"github_profile_url"`
	Role               Role       `json:"role"`
	EmailVerified      bool       `json:"email_verified"`
	IsLocked           bool       `json:"is_locked"`
	LastLoginAt        *time.Time `json:"last_login_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Links              []Link     `json:"links"`
}

// NewAccountResponse projects an account into its response form.
func NewAccountResponse(a Account, links []Link) AccountResponse {
	if links == nil {
		links = []Link{}
	}

	return AccountResponse{
		ID:                 a.ID,
		Email:              a.Email,
		Nickname:           a.Nickname,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		Bio:                a.Bio,
		ProfilePictureURL:  a.ProfilePictureURL,
		LinkedInProfileURL: a.LinkedInProfileURL,
		GitHubProfileURL:   a.GitHubProfileURL,
		Role:               a.Role,
		EmailVerified:      a.EmailVerified,
		IsLocked:           a.IsLocked,
		LastLoginAt:        a.LastLoginAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		Links:              links,
	}
}

// AccountListResponse is a page of accounts (GET /users).
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Links []Link            `json:"links"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse is a plain informational response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-validation error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldErrorDetail describes one offending field of a rejected request.
type FieldErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the body of a 422 response.
type ValidationErrorResponse struct {
	Detail []FieldErrorDetail `json:"detail"`
}

// VersionResponse is the JSON form of GET /api/version.
type VersionResponse struct {
	Version      string `json:"version"`
	BuildVersion string `json:"build_version"`
	BuildDate    string `json:"build_date"`
	BuildCommit  string `json:"build_commit"`
}
