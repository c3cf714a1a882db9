package error

import "errors"

// Summary domain errors.
var (
	// ErrInvalidGranularity is returned when granularity is not valid.
	ErrInvalidGranularity = errors.New("granularity must be: weekly, monthly, yearly or all")

	// ErrNoAlertRecipient is returned when a budget alert has no email to go to.
	ErrNoAlertRecipient = errors.New("no recipient for budget alert")

	// ErrMailerUnavailable is returned when email delivery is not configured.
	ErrMailerUnavailable = errors.New("email delivery is not configured")
)

// SummaryErrorCode defines error codes for summary errors.
// Format: SUM-XXYYYY where XX is category and YYYY is specific error.
type SummaryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidGranularity SummaryErrorCode = "SUM-010001"

	// Delivery errors (02XXXX)
	ErrCodeNoAlertRecipient  SummaryErrorCode = "SUM-020001"
	ErrCodeMailerUnavailable SummaryErrorCode = "SUM-020002"
	ErrCodeAlertNotSent      SummaryErrorCode = "SUM-020003"

	// Internal errors (99XXXX)
	ErrCodeSummaryInternalError SummaryErrorCode = "SUM-990001"
)

// SummaryError represents a summary error with code and message.
type SummaryError struct {
	Code    SummaryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SummaryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SummaryError) Unwrap() error {
	return e.Err
}

// NewSummaryError creates a new SummaryError with the given code and message.
func NewSummaryError(code SummaryErrorCode, message string, err error) *SummaryError {
	return &SummaryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
