package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-accounts/models"
)

type detailModel struct {
	account models.AccountResponse
	status  string
}

func (m detailModel) View() string {
	a := m.account

	var b strings.Builder
	fmt.Fprintf(&b, "ID:         %s\n", a.ID)
	fmt.Fprintf(&b, "Email:      %s\n", a.Email)
	fmt.Fprintf(&b, "Nickname:   %s\n", a.Nickname)
	fmt.Fprintf(&b, "First name: %s\n", valueOrDash(a.FirstName))
	fmt.Fprintf(&b, "Last name:  %s\n", valueOrDash(a.LastName))
	fmt.Fprintf(&b, "Bio:        %s\n", valueOrDash(a.Bio))
	fmt.Fprintf(&b, "GitHub:     %s\n", valueOrDash(a.GitHubProfileURL))
	fmt.Fprintf(&b, "LinkedIn:   %s\n", valueOrDash(a.LinkedInProfileURL))
	fmt.Fprintf(&b, "Role:       %s\n", a.Role)
	fmt.Fprintf(&b, "Verified:   %t\n", a.EmailVerified)
	locked := "no"
	if a.IsLocked {
		locked = lockedStyle.Render("yes")
	}
	fmt.Fprintf(&b, "Locked:     %s\n", locked)
	fmt.Fprintf(&b, "Created:    %s", a.CreatedAt.Format("2006-01-02 15:04:05"))
	if a.LastLoginAt != nil {
		fmt.Fprintf(&b, "\nLast login: %s", a.LastLoginAt.Format("2006-01-02 15:04:05"))
	}

	return renderPage(titleStyle.Render(a.Email), b.String(), m.status, "u: unlock  d: delete  c: copy id  esc: back")
}
