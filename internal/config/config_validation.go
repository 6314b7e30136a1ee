// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var supportedTokenAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

var supportedTLSPolicies = map[string]struct{}{
	"mandatory":     {},
	"opportunistic": {},
	"none":          {},
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs)
	}
	if _, ok := supportedTokenAlgorithms[strings.ToUpper(cfg.App.TokenAlgorithm)]; !ok {
		return fmt.Errorf("%w: unsupported token algorithm %q", ErrInvalidAppConfigs, cfg.App.TokenAlgorithm)
	}
	cfg.App.TokenAlgorithm = strings.ToUpper(cfg.App.TokenAlgorithm)
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.MaxLoginAttempts < 1 {
		return fmt.Errorf("%w: max login attempts must be at least 1", ErrInvalidAppConfigs)
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost must be in range %d-%d", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is empty", ErrInvalidServerConfigs)
	}

	if cfg.Adapter.Mail.Host != "" {
		if cfg.Adapter.Mail.Port < 1 || cfg.Adapter.Mail.Port > 65535 {
			return fmt.Errorf("%w: mail port must be in range 1-65535", ErrInvalidAdapterConfigs)
		}
		if _, ok := supportedTLSPolicies[strings.ToLower(cfg.Adapter.Mail.TLSPolicy)]; !ok {
			return fmt.Errorf("%w: unsupported tls policy %q", ErrInvalidAdapterConfigs, cfg.Adapter.Mail.TLSPolicy)
		}
		if cfg.Adapter.Mail.From == "" && cfg.Adapter.Mail.Username == "" {
			return fmt.Errorf("%w: sender address is empty", ErrInvalidAdapterConfigs)
		}
	}

	return nil
}
