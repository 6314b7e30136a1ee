// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the interactive operator console of accountctl: a
// login form, a paged account list and an account detail screen with unlock,
// delete and copy-id actions.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

// Console runs the operator console over a [adapter.ServerAdapter].
type Console struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

func New(serverAdapter adapter.ServerAdapter, logger *logger.Logger) *Console {
	return &Console{adapter: serverAdapter, logger: logger}
}

// Run blocks until the operator quits. A token already stored in the adapter
// skips the login screen.
func (c *Console) Run(ctx context.Context) error {
	model := newAppModel(ctx, c.adapter)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.err != nil && !errors.Is(result.err, ErrUserQuit) {
		return result.err
	}

	c.logger.Debug().Str("func", "*Console.Run").Msg("console closed")
	return nil
}
