package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// 서비스 전체에서 쓰는 에러 코드. 응답 본문의 code 필드에 그대로 실립니다.
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED" // 커플 멤버가 아닌 경우 등 권한 부족
	ErrConflict        = "CONFLICT"
	ErrUnavailable     = "UNAVAILABLE" // 저장소나 외부 백엔드 장애
)

// CodePair는 에러 코드 하나에 대응하는 HTTP 상태와 gRPC 코드입니다
type CodePair struct {
	HTTPStatus int
	GRPCCode   codes.Code
}

var codeMapping = map[string]CodePair{
	ErrInternal:        {http.StatusInternalServerError, codes.Internal},
	ErrNotFound:        {http.StatusNotFound, codes.NotFound},
	ErrInvalidArgument: {http.StatusBadRequest, codes.InvalidArgument},
	ErrUnauthenticated: {http.StatusUnauthorized, codes.Unauthenticated},
	ErrUnauthorized:    {http.StatusForbidden, codes.PermissionDenied},
	ErrConflict:        {http.StatusConflict, codes.AlreadyExists},
	ErrUnavailable:     {http.StatusServiceUnavailable, codes.Unavailable},
}

// Lookup은 코드에 대응하는 쌍을 돌려줍니다. 모르는 코드는 INTERNAL로 봅니다.
func Lookup(code string) CodePair {
	if pair, ok := codeMapping[code]; ok {
		return pair
	}
	return codeMapping[ErrInternal]
}

// ToGRPCCode는 에러 체인의 코드를 gRPC 코드로 변환합니다
func ToGRPCCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	return Lookup(CodeOf(err)).GRPCCode
}
