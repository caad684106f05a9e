package logger

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/AREOPAGO7/ZOOJ-sub001/pkg/errors"
)

// NewGrpcUnaryServerInterceptor는 단일 요청/응답 gRPC 호출을 zap으로 기록하고
// 앱 에러를 gRPC 상태로 변환하는 인터셉터를 생성합니다.
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		// 코드를 가진 앱 에러는 대응하는 gRPC 상태로 바꿔서 내보냅니다
		if _, ok := status.FromError(err); !ok {
			err = status.Error(apperrors.ToGRPCCode(err), err.Error())
		}

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("grpc.service", path.Dir(info.FullMethod)[1:]),
			zap.String("grpc.method", path.Base(info.FullMethod)),
			zap.String("grpc.code", code.String()),
			zap.Duration("grpc.duration", time.Since(start)),
		}

		switch code {
		case codes.OK:
			logger.Debug("gRPC 요청 완료", fields...)
		case codes.Canceled, codes.DeadlineExceeded, codes.Unavailable, codes.NotFound, codes.InvalidArgument:
			logger.Warn("gRPC 요청 실패", append(fields, zap.Error(err))...)
		default:
			logger.Error("gRPC 요청 오류", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}
