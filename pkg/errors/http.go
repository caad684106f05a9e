package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	return Lookup(code).HTTPStatus
}

// ErrorBody는 클라이언트에 내려가는 에러 응답 형식입니다
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToHTTPError는 에러를 Echo HTTP 에러로 변환합니다
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	// Echo 에러인 경우 그대로 반환
	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		return echoErr
	}

	var coded Error
	if As(err, &coded) {
		return echo.NewHTTPError(ToHTTPStatus(coded.Code()), ErrorBody{
			Error: coded.Error(),
			Code:  coded.Code(),
		})
	}

	// 기본 에러는 500으로 처리하고 내부 메시지는 노출하지 않습니다
	return echo.NewHTTPError(http.StatusInternalServerError, ErrorBody{
		Error: http.StatusText(http.StatusInternalServerError),
		Code:  ErrInternal,
	})
}
