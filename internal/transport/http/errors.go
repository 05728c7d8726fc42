package http

import (
	"net/http"

	"github.com/vovakirdan/burnroom-server/internal/core"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func statusForCode(code string) int {
	switch code {
	case core.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case core.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case core.ErrCodePolicyRejected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorResponseFor(err error) (int, ErrorResponse) {
	if ce, ok := core.AsCoreError(err); ok {
		return statusForCode(ce.Code), ErrorResponse{Error: ce.Message, Code: ce.Code}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: core.ErrCodeInternal}
}
