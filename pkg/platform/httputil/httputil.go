package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"roomdesk/pkg/apperrors"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore
	// encoding errors. The response body may be incomplete, but headers are
	// already sent.
	_ = json.NewEncoder(w).Encode(response)
}

// ErrorResponse is roomdesk's error envelope. The detail field carries the
// human-readable message, matching the shape of the booking backend's own
// error payloads so browser code handles both uniformly.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// WriteError centralizes application error translation to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		WriteJSON(w, CodeToHTTPStatus(appErr.Code), ErrorResponse{
			Error:  string(appErr.Code),
			Detail: appErr.Message,
		})
		return
	}

	// Fallback for unexpected errors
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: string(apperrors.CodeInternal),
	})
}

// CodeToHTTPStatus translates application error codes to HTTP status codes.
// Backend-relayed conditions keep their original status so browser code sees
// the same semantics it would against the backend directly.
func CodeToHTTPStatus(code apperrors.Code) int {
	switch code {
	case apperrors.CodeValidation, apperrors.CodeRequest:
		return http.StatusBadRequest
	case apperrors.CodeAuth:
		return http.StatusUnauthorized
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.CodeNetwork:
		return http.StatusBadGateway
	case apperrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
