package errors

import (
	"google.golang.org/grpc/status"
)

// ToGRPCError는 에러를 gRPC status 에러로 변환합니다
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var appErr *AppError
	if As(err, &appErr) {
		_, grpcCode := GetCodeMapping(appErr.Code())
		return status.Error(grpcCode, appErr.Message())
	}
	_, grpcCode := GetCodeMapping(ErrInternal)
	return status.Error(grpcCode, "internal error")
}
