package error

import "errors"

// Advice domain errors.
var (
	// ErrAdviceServiceUnavailable is returned when no AI provider is configured.
	ErrAdviceServiceUnavailable = errors.New("advice service unavailable")
)

// AdviceErrorCode defines error codes for advice errors.
// Format: ADV-XXYYYY where XX is category and YYYY is specific error.
type AdviceErrorCode string

const (
	// Provider errors (01XXXX)
	ErrCodeAdviceUnavailable AdviceErrorCode = "ADV-010001"
	ErrCodeAdviceRateLimited AdviceErrorCode = "ADV-010002"
	ErrCodeAdviceFailed      AdviceErrorCode = "ADV-010003"

	// Input errors (02XXXX)
	ErrCodeMissingProfile AdviceErrorCode = "ADV-020001"
)

// AdviceError represents an advice error with code and message.
type AdviceError struct {
	Code    AdviceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AdviceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AdviceError) Unwrap() error {
	return e.Err
}

// NewAdviceError creates a new AdviceError with the given code and message.
func NewAdviceError(code AdviceErrorCode, message string, err error) *AdviceError {
	return &AdviceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
