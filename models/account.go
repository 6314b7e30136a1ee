package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted user entity: identity, profile, credentials,
// role, verification state and security counters.
//
// HashedPassword and VerificationToken never leave the server; they are
// excluded from JSON and outward-facing code should render accounts through
// [NewAccountResponse].
type Account struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Nickname string    `json:"nickname"`

	FirstName          *string `json:"first_name,omitempty"`
	LastName           *string `json:"last_name,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	ProfilePictureURL  *string `json:"profile_picture_url,omitempty"`
	LinkedInProfileURL *string `json:"linkedin_profile_url,omitempty"`
	GitHubProfileURL   *string `json:"github_profile_url,omitempty"`

	HashedPassword string `json:"-"`
	Role           Role   `json:"role"`

	EmailVerified     bool    `json:"email_verified"`
	VerificationToken *string `json:"-"`

	FailedLoginAttempts int  `json:"failed_login_attempts"`
	IsLocked            bool `json:"is_locked"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// AccountUpdate is a partial update of an account row. Only non-nil fields
// are written.
type AccountUpdate struct {
	Email              *string
	Nickname           *string
	FirstName          *string
	LastName           *string
	Bio                *string
	ProfilePictureURL  *string
	LinkedInProfileURL *string
	GitHubProfileURL   *string
	HashedPassword     *string
	Role               *Role
}

// IsEmpty reports whether the update carries no field at all.
func (u AccountUpdate) IsEmpty() bool {
	return u.Email == nil &&
		u.Nickname == nil &&
		u.FirstName == nil &&
		u.LastName == nil &&
		u.Bio == nil &&
		u.ProfilePictureURL == nil &&
		u.LinkedInProfileURL == nil &&
		u.GitHubProfileURL == nil &&
		u.HashedPassword == nil &&
		u.Role == nil
}

// AccountPage is one page of accounts together with the total row count.
type AccountPage struct {
	Items []Account
	Total int64
	Skip  int
	Limit int
}
