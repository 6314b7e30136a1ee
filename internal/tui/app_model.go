package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type screen int

const (
	screenLogin screen = iota
	screenList
	screenDetail
)

const (
	actionUnlock = "unlock"
	actionDelete = "delete"
)

// writeClipboard is swapped in tests; headless CI has no clipboard.
var writeClipboard = clipboard.WriteAll

type appModel struct {
	ctx           context.Context
	adapter       adapter.ServerAdapter
	currentScreen screen

	login  loginModel
	list   listModel
	detail detailModel

	err          error
	showError    bool
	errorOverlay errorOverlayModel
	showConfirm  bool
	confirm      confirmModel
}

func newAppModel(ctx context.Context, serverAdapter adapter.ServerAdapter) appModel {
	m := appModel{
		ctx:           ctx,
		adapter:       serverAdapter,
		currentScreen: screenLogin,
		login:         newLoginModel(),
		list:          newListModel(),
	}
	if serverAdapter.Token() != "" {
		m.currentScreen = screenList
		m.list.loading = true
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.currentScreen == screenList {
		return tea.Batch(m.cmdLoadPage(m.list.skip), m.list.spinner.Tick)
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				return m, m.cmdDelete(m.detail.account.ID)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
			}
			return m, nil
		}
	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.currentScreen = screenList
		m.list.loading = true
		return m, tea.Batch(m.cmdLoadPage(0), m.list.spinner.Tick)
	case pageLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			return m.handleAPIError(msg.err)
		}
		m.list.items = msg.page.Items
		m.list.total = msg.page.Total
		if msg.page.Size > 0 {
			m.list.limit = msg.page.Size
			m.list.skip = (msg.page.Page - 1) * msg.page.Size
		}
		if m.list.idx >= len(m.list.items) {
			m.list.idx = len(m.list.items) - 1
		}
		if m.list.idx < 0 {
			m.list.idx = 0
		}
		return m, nil
	case accountActionMsg:
		if msg.err != nil {
			return m.handleAPIError(msg.err)
		}
		switch msg.action {
		case actionUnlock:
			m.detail.account.IsLocked = false
			m.detail.status = "Account unlocked"
			return m, tea.Batch(m.cmdLoadPage(m.list.skip), cmdClearStatus())
		case actionDelete:
			m.currentScreen = screenList
			m.list.status = "Account deleted"
			m.list.loading = true
			return m, tea.Batch(m.cmdLoadPage(m.list.skip), cmdClearStatus())
		}
		return m, nil
	case copiedMsg:
		m.detail.status = "Copied!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.detail.status = ""
		m.list.status = ""
		return m, nil
	case spinner.TickMsg:
		if !m.list.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.list.spinner, cmd = m.list.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenLogin:
		body = m.login.View()
	case screenList:
		body = m.list.View()
	case screenDetail:
		body = m.detail.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// handleAPIError sends the operator back to the login form when the token is
// no longer accepted, and shows the error otherwise.
func (m appModel) handleAPIError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, adapter.ErrUnauthorized) {
		m.adapter.SetToken("")
		m.currentScreen = screenLogin
		m.login = newLoginModel()
	}
	m.showErrorf(humanizeError(err))
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case keyMsg.String() == "ctrl+c" || key.Matches(keyMsg, keys.esc):
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab):
			m.login = m.login.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = m.login.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			email := strings.TrimSpace(m.login.inputs[0].Value())
			password := m.login.inputs[1].Value()
			if email == "" || password == "" {
				m.showErrorf("Email and password are required")
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(email, password)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.items)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.right):
		if m.list.hasNext() && !m.list.loading {
			m.list.loading = true
			m.list.idx = 0
			return m, m.cmdLoadPage(m.list.skip + m.list.limit)
		}
	case key.Matches(keyMsg, keys.left):
		if m.list.hasPrev() && !m.list.loading {
			m.list.loading = true
			m.list.idx = 0
			return m, m.cmdLoadPage(max(m.list.skip-m.list.limit, 0))
		}
	case key.Matches(keyMsg, keys.refresh):
		m.list.loading = true
		return m, tea.Batch(m.cmdLoadPage(m.list.skip), m.list.spinner.Tick)
	case key.Matches(keyMsg, keys.logout):
		m.adapter.SetToken("")
		m.currentScreen = screenLogin
		m.login = newLoginModel()
	case key.Matches(keyMsg, keys.enter):
		account, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.detail = detailModel{account: account}
		m.currentScreen = screenDetail
	}

	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
	case key.Matches(keyMsg, keys.unlock):
		if !m.detail.account.IsLocked {
			m.detail.status = "Account is not locked"
			return m, cmdClearStatus()
		}
		return m, m.cmdUnlock(m.detail.account.ID)
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.confirm = confirmModel{email: m.detail.account.Email}
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.detail.account.ID.String())
	}

	return m, nil
}

func (m appModel) cmdLogin(email, password string) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter
	return func() tea.Msg {
		_, err := serverAdapter.Login(ctx, email, password)
		return loginDoneMsg{err: err}
	}
}

func (m appModel) cmdLoadPage(skip int) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter
	limit := m.list.limit
	return func() tea.Msg {
		page, err := serverAdapter.ListAccounts(ctx, skip, limit)
		return pageLoadedMsg{page: page, err: err}
	}
}

func (m appModel) cmdUnlock(id uuid.UUID) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter
	return func() tea.Msg {
		err := serverAdapter.UnlockAccount(ctx, id)
		return accountActionMsg{action: actionUnlock, err: err}
	}
}

func (m appModel) cmdDelete(id uuid.UUID) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter
	return func() tea.Msg {
		err := serverAdapter.DeleteAccount(ctx, id)
		return accountActionMsg{action: actionDelete, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return accountActionMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
