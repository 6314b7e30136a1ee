package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/mock"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func newTestGRPCHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, *mock.MockHealthService) {
	t.Helper()
	health := mock.NewMockHealthService(ctrl)
	return NewHandler(&service.Services{HealthService: health}, logger.Nop()), health
}

func TestHandler_Check(t *testing.T) {
	tests := []struct {
		name       string
		service    string
		checkErr   error
		wantStatus grpc_health_v1.HealthCheckResponse_ServingStatus
	}{
		{name: "overall serving", service: "", wantStatus: grpc_health_v1.HealthCheckResponse_SERVING},
		{name: "account service serving", service: AccountServiceName, wantStatus: grpc_health_v1.HealthCheckResponse_SERVING},
		{name: "database down", service: "", checkErr: service.ErrUnhealthy, wantStatus: grpc_health_v1.HealthCheckResponse_NOT_SERVING},
		{name: "any failure", service: "", checkErr: errors.New("boom"), wantStatus: grpc_health_v1.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, health := newTestGRPCHandler(t, ctrl)
			ctx := context.Background()
			health.EXPECT().Check(ctx).Return(tt.checkErr)

			resp, err := h.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: tt.service})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.GetStatus())
		})
	}
}

func TestHandler_Check_UnknownService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, health := newTestGRPCHandler(t, ctrl)
	health.EXPECT().Check(gomock.Any()).Times(0)

	_, err := h.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: "billing.v1.Billing"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandler_Check_NoHealthService(t *testing.T) {
	h := NewHandler(&service.Services{}, logger.Nop())

	resp, err := h.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
