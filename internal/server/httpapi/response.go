// Package httpapi exposes the public HTTP surface of the auth service.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// ResponseCode values are part of the external API contract.
type ResponseCode int

const (
	CodeOK           ResponseCode = 0
	CodeGeneric      ResponseCode = 1
	CodeInvalidBody  ResponseCode = 2
	CodeAccessDenied ResponseCode = 3
)

// APIResponse is the JSON envelope every endpoint answers with. Error
// messages stay short and generic; internal detail never leaves the process.
type APIResponse struct {
	Success bool         `json:"success"`
	Code    ResponseCode `json:"code"`
	Message string       `json:"message"`
	Body    any          `json:"body,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeSuccess(w http.ResponseWriter, body any) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Code: CodeOK, Message: "OK", Body: body})
}

func writeError(w http.ResponseWriter, status int, code ResponseCode, message string) {
	writeJSON(w, status, APIResponse{Success: false, Code: code, Message: message})
}
