package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse는 HTTP 에러 응답 본문입니다
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// ToResponse는 에러를 HTTP 상태 코드와 응답 본문으로 변환합니다.
// 5xx 에러의 메시지는 외부에 노출하지 않습니다.
func ToResponse(err error) (int, ErrorResponse) {
	resp := ErrorResponse{Code: ErrInternal}
	httpStatus := http.StatusInternalServerError

	var appErr *AppError
	var echoErr *echo.HTTPError
	switch {
	case As(err, &appErr):
		httpStatus = ToHTTPStatus(appErr.Code())
		resp.Code = appErr.Code()
		resp.Error = appErr.Message()
		resp.Details = appErr.Details()
	case As(err, &echoErr):
		httpStatus = echoErr.Code
		resp.Code = httpStatusToCode(echoErr.Code)
		resp.Error = http.StatusText(echoErr.Code)
		if m, ok := echoErr.Message.(string); ok && m != "" {
			resp.Error = m
		}
	}

	if httpStatus >= http.StatusInternalServerError {
		resp.Error = http.StatusText(httpStatus)
	}
	return httpStatus, resp
}

// httpStatusToCode는 HTTP 상태 코드를 내부 에러 코드로 변환합니다
func httpStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return ErrInvalidArgument
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusGatewayTimeout:
		return ErrTimeout
	case http.StatusNotImplemented, http.StatusMethodNotAllowed:
		return ErrNotImplemented
	default:
		return ErrInternal
	}
}
