package response

import (
	"encoding/json"
	"net/http"
)

// In-band error codes the admin UI switches on.
const (
	CodeInvalidDomainFormat      = "INVALID_DOMAIN_FORMAT"
	CodeCustomDomainAlreadyExist = "CUSTOM_DOMAIN_ALREADY_EXISTS"
	CodeNoCustomDomain           = "NO_CUSTOM_DOMAIN"
	CodeNotEligible              = "NOT_ELIGIBLE"
)

// ErrorResponse is the JSON error envelope. Code is set only for errors the
// UI distinguishes programmatically.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

func WriteErrorCode(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Code: code})
}
