package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(cfg *StructuredConfig) {}},
		{name: "missing sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "unsupported algorithm", mutate: func(cfg *StructuredConfig) { cfg.App.TokenAlgorithm = "RS256" }, wantErr: ErrInvalidAppConfigs},
		{name: "zero token duration", mutate: func(cfg *StructuredConfig) { cfg.App.TokenDuration = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "zero max attempts", mutate: func(cfg *StructuredConfig) { cfg.App.MaxLoginAttempts = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "bcrypt cost too low", mutate: func(cfg *StructuredConfig) { cfg.App.BcryptCost = 2 }, wantErr: ErrInvalidAppConfigs},
		{name: "empty dsn", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "empty http address", mutate: func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{
			name: "mail without sender",
			mutate: func(cfg *StructuredConfig) {
				cfg.Adapter.Mail = Mail{Host: "smtp.example.com", Port: 587, TLSPolicy: "mandatory"}
			},
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name: "mail with unknown tls policy",
			mutate: func(cfg *StructuredConfig) {
				cfg.Adapter.Mail = Mail{Host: "smtp.example.com", Port: 587, From: "a@b.c", TLSPolicy: "always"}
			},
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name: "mail fully configured",
			mutate: func(cfg *StructuredConfig) {
				cfg.Adapter.Mail = Mail{Host: "smtp.example.com", Port: 587, Username: "user", TLSPolicy: "NONE"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_NormalizesAlgorithm(t *testing.T) {
	cfg := validConfig()
	cfg.App.TokenAlgorithm = "hs512"

	require.NoError(t, cfg.validate())
	assert.Equal(t, "HS512", cfg.App.TokenAlgorithm)
}
