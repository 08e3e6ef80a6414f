package apperr

import (
	"errors"
	"fmt"
)

type Code int

const (
	BadRequestCode   Code = 400
	UnauthorizedCode Code = 401
	ForbiddenCode    Code = 403
	NotFoundCode     Code = 404
	ConflictCode     Code = 409
	InternalCode     Code = 500
)

// ErrStrMap 提供每個錯誤碼的預設訊息
var ErrStrMap = map[Code]string{
	BadRequestCode:   "bad request",
	UnauthorizedCode: "unauthenticated",
	ForbiddenCode:    "forbidden",
	NotFoundCode:     "not found",
	ConflictCode:     "conflict",
	InternalCode:     "internal server error",
}

type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *AppError {
	if message == "" {
		message = ErrStrMap[code]
	}
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 保留原始錯誤，對外只顯示 message
func Wrap(code Code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetCode 取出錯誤碼，非 AppError 一律視為 internal
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalCode
}

func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
