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

// Error는 기본 에러 인터페이스를 확장합니다
type Error interface {
	error
	Code() string  // 에러 코드 반환
	Unwrap() error // 내부 에러 반환
}

// AppError는 기본 에러 구현체입니다
type AppError struct {
	code    string
	message string
	details map[string]string
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

// Message는 내부 에러를 제외한 메시지만 반환합니다
func (e *AppError) Message() string {
	return e.message
}

// Details는 필드별 상세 정보를 반환합니다 (없으면 nil)
func (e *AppError) Details() map[string]string {
	return e.details
}

func (e *AppError) Unwrap() error {
	return e.err
}

// Is는 같은 코드와 메시지를 가진 AppError를 동일한 에러로 취급합니다.
// 센티널 AppError를 fmt.Errorf("%w")로 감싼 뒤에도 errors.Is로 비교할 수 있습니다.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.code == t.code && e.message == t.message
}

// WithDetails는 상세 정보가 추가된 복사본을 반환합니다
func (e *AppError) WithDetails(details map[string]string) *AppError {
	cp := *e
	cp.details = details
	return &cp
}

// WithCause는 내부 에러가 설정된 복사본을 반환합니다
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.err = err
	return &cp
}

// NewAppError는 새 애플리케이션 에러를 생성합니다
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// CodeOf는 에러 체인에서 가장 바깥쪽 AppError의 코드를 반환합니다
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

// HasCode는 에러 체인에 주어진 코드의 AppError가 있는지 확인합니다
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
