package rest

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Data any `json:"data"`
}

type ResponseError struct {
	Error string `json:"error"`
}

// SuccessJSON 統一成功回應格式
func SuccessJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Data: data})
}

// ErrorJSON 統一錯誤回應格式
func ErrorJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ResponseError{Error: message})
}
