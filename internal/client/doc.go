// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the accountctl operator CLI runtime.
//
// Every subcommand is a thin layer over [adapter.ServerAdapter]: it parses
// its flags, calls the account API and prints the result. "console" hands
// control to the interactive terminal UI.
package client
