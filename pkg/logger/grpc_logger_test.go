package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/AREOPAGO7/ZOOJ-sub001/pkg/errors"
)

func TestGrpcUnaryServerInterceptor(t *testing.T) {
	interceptor := NewGrpcUnaryServerInterceptor(zap.NewNop())
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
	}{
		{"success", nil, codes.OK},
		{"status error passes through", status.Error(codes.Unavailable, "down"), codes.Unavailable},
		{"app error is mapped", apperrors.NewAppError(apperrors.ErrNotFound, "quiz not found", nil), codes.NotFound},
		{"plain error is internal", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return "resp", tt.err
			})

			assert.Equal(t, "resp", resp)
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
}
