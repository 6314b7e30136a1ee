package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/charmbracelet/bubbles/spinner"
)

const defaultPageSize = 10

type listModel struct {
	items   []models.AccountResponse
	idx     int
	skip    int
	limit   int
	total   int64
	loading bool
	spinner spinner.Model
	status  string
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{spinner: s, limit: defaultPageSize}
}

func (m listModel) current() (models.AccountResponse, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.AccountResponse{}, false
	}
	return m.items[m.idx], true
}

func (m listModel) hasNext() bool {
	return int64(m.skip+m.limit) < m.total
}

func (m listModel) hasPrev() bool {
	return m.skip > 0
}

func roleBadge(r models.Role) string {
	switch r {
	case models.RoleAdmin:
		return adminStyle.Render("[A]")
	case models.RoleManager:
		return managerStyle.Render("[M]")
	default:
		return "[U]"
	}
}

func (m listModel) View() string {
	title := titleStyle.Render("ACCOUNTS")
	if m.loading {
		title += "  " + m.spinner.View()
	}

	var b strings.Builder
	if len(m.items) == 0 && !m.loading {
		b.WriteString("No accounts")
	}
	for i, item := range m.items {
		line := roleBadge(item.Role) + " " + column(item.Email, 32) + " " + column(item.Nickname, 20)
		if item.IsLocked {
			line += " " + lockedStyle.Render("locked")
		}
		if i == m.idx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.limit > 0 {
		fmt.Fprintf(&b, "\npage %d, %d total", m.skip/m.limit+1, m.total)
	}

	return renderPage(title, b.String(), m.status, "enter: open  ←/→: page  r: refresh  o: log out  q: quit")
}
