// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// loginModel is the email/password form shown when the adapter holds no
// token.
type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newLoginModel() loginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return loginModel{inputs: []textinput.Model{emailInput, passwordInput}}
}

func (m loginModel) focusNext() loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) focusPrev() loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) View() string {
	data := "Email:    [" + m.inputs[0].View() + "]\n"
	data += "Password: [" + m.inputs[1].View() + "]"
	if m.submitting {
		data += "\n\nSigning in..."
	}

	return renderPage(titleStyle.Render("ACCOUNT CONSOLE: LOGIN"), data, "", "tab: next field  enter: sign in  esc: quit")
}
