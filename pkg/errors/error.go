package errors

import (
	"errors"
	"fmt"
)

// 표준 라이브러리 함수 재노출
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error는 코드를 가진 에러 인터페이스입니다.
// 도메인 에러도 이 인터페이스를 구현하면 HTTP/gRPC 매핑을 그대로 사용할 수 있습니다.
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError는 기본 에러 구현체입니다
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError는 새 애플리케이션 에러를 생성합니다
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Wrap은 기존 에러를 래핑합니다. 체인에 코드가 있으면 그 코드를 유지합니다.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return NewAppError(CodeOf(err), message, err)
}

// WrapWithCode는 지정한 코드로 에러를 래핑합니다
func WrapWithCode(code string, err error, message string) error {
	if err == nil {
		return nil
	}
	return NewAppError(code, message, err)
}

// CodeOf는 에러 체인에서 처음 만나는 코드를 반환합니다. 코드가 없으면 ErrInternal입니다.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var coded Error
	if As(err, &coded) {
		return coded.Code()
	}
	return ErrInternal
}
