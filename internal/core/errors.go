package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeRateLimited    = "rate_limited"
	ErrCodeInvalidInput   = "invalid_input"
	ErrCodePolicyRejected = "policy_rejected"
	ErrCodeInternal       = "internal"
)

var (
	ErrRateLimited    = errors.New("rate limited")
	ErrInvalidInput   = errors.New("invalid input")
	ErrPolicyRejected = errors.New("policy rejected")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

// Is lets errors.Is match a CoreError against the sentinel of its kind.
func (e *CoreError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.Code == ErrCodeRateLimited
	case ErrInvalidInput:
		return e.Code == ErrCodeInvalidInput
	case ErrPolicyRejected:
		return e.Code == ErrCodePolicyRejected
	}
	return false
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// AsCoreError extracts a CoreError from err, if any.
func AsCoreError(err error) (*CoreError, bool) {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
