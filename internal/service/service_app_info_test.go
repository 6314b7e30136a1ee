package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.NewAppBuildInfo("", "", ""), logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestAppInfoService_ReportsVersionAndBuild(t *testing.T) {
	build := models.NewAppBuildInfo("v1.2.3", "2026-03-01", "abc123")

	svc, err := NewAppInfoService(config.App{Version: "1.2.3"}, build, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.2.3", svc.GetAppVersion(ctx))
	assert.Equal(t, "abc123", svc.GetBuildInfo(ctx).BuildCommit())
	assert.Equal(t, "v1.2.3", svc.GetBuildInfo(ctx).BuildVersion())
}
