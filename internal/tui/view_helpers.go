package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const pageWidth = 64

var pageDivider = strings.Repeat("─", pageWidth)

// renderPage lays out one console screen: title, divider, indented body,
// optional status line, divider and the key legend.
func renderPage(title, body, status, hotKeys string) string {
	var b strings.Builder

	b.WriteString(title + "\n" + pageDivider + "\n\n")

	if strings.TrimSpace(body) == "" {
		body = "-"
	}
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(body))
	b.WriteString("\n")

	if status != "" {
		b.WriteString("\n  " + statusStyle.Render(status) + "\n")
	}

	b.WriteString("\n" + pageDivider + "\n")
	if hotKeys != "" {
		b.WriteString(helpStyle.Render(hotKeys) + "\n")
	}

	return b.String()
}

func valueOrDash(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "-"
	}
	return *v
}

// column truncates v to width terminal cells and pads it to exactly that
// width, so wide runes in nicknames keep the table aligned.
func column(v string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(v, width, "..."), width)
}
