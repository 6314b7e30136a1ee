package tui

import "fmt"

// confirmModel asks before an account is deleted; deletion cannot be undone.
type confirmModel struct {
	email string
}

func (m confirmModel) View() string {
	return dangerBoxStyle.Render(fmt.Sprintf(
		"Delete account %s?\nThe account and its profile are removed permanently.\n\n%s",
		m.email, helpStyle.Render("y: delete    n / esc: keep"),
	))
}
