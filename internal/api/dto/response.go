package dto

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/apperr"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func SuccessJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// ErrorJSON 依錯誤碼回應, 非 AppError 一律回 500
func ErrorJSON(w http.ResponseWriter, err error) {
	code := apperr.GetCode(err)

	message := apperr.ErrStrMap[code]
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(int(code))
	json.NewEncoder(w).Encode(Response{
		Status:  "error",
		Message: message,
	})
}
