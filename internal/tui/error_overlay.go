package tui

// errorOverlayModel shows an API or input error on top of the current
// screen until it is dismissed.
type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	return overlayBoxStyle.Render(errorStyle.Render("Error") + "\n\n" + m.message + "\n\n" + helpStyle.Render("enter / esc: close"))
}
