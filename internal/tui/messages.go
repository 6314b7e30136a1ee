package tui

import (
	"github.com/MKhiriev/go-user-accounts/models"
)

type loginDoneMsg struct {
	err error
}

type pageLoadedMsg struct {
	page models.AccountListResponse
	err  error
}

type accountActionMsg struct {
	action string
	err    error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
