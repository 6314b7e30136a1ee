// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the process environment through the `env`,
// `envDefault` and `envPrefix` tags of its fields.
func parseEnv(cfg any) error {
	return parseEnvWithPrefix(cfg, "")
}

// parseEnvWithPrefix is parseEnv with prefix prepended to every variable
// name, so "ACCOUNTCTL_" turns the TOKEN field into ACCOUNTCTL_TOKEN.
func parseEnvWithPrefix(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
