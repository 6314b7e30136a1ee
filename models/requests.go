package models

// RegisterRequest is the self-service registration payload (POST /register).
type RegisterRequest struct {
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	Nickname           *string `json:"nickname,omitempty"`
	FirstName          *string `json:"first_name,omitempty"`
	LastName           *string `json:"last_name,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	ProfilePictureURL  *string `json:"profile_picture_url,omitempty"`
	LinkedInProfileURL *string `json:"linkedin_profile_url,omitempty"`
	GitHubProfileURL   *string `json:"github_profile_url,omitempty"`
}

// CreateAccountRequest is used by managers and admins to create accounts
// directly (POST /users). Role defaults to AUTHENTICATED when empty.
type CreateAccountRequest struct {
	RegisterRequest
	Role Role `json:"role,omitempty"`
}

// UpdateAccountRequest is a partial profile update. At least one field must
// be present.
type UpdateAccountRequest struct {
	Email              *string `json:"email,omitempty"`
	Nickname           *string `json:"nickname,omitempty"`
	FirstName          *string `json:"first_name,omitempty"`
	LastName           *string `json:"last_name,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	ProfilePictureURL  *string `json:"profile_picture_url,omitempty"`
	LinkedInProfileURL *string `json:"linkedin_profile_url,omitempty"`
	GitHubProfileURL   *string `json:"github_profile_url,omitempty"`
	Password           *string `json:"password,omitempty"`
	Role               *Role   `json:"role,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (r UpdateAccountRequest) IsEmpty() bool {
	return r.Email == nil &&
		r.Nickname == nil &&
		r.FirstName == nil &&
		r.LastName == nil &&
		r.Bio == nil &&
		r.ProfilePictureURL == nil &&
		r.LinkedInProfileURL == nil &&
		r.GitHubProfileURL == nil &&
		r.Password == nil &&
		r.Role == nil
}

// ResetPasswordRequest is the body of POST /users/{id}/reset-password.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}
