package error

import "errors"

// Household, financial profile and savings target errors.
var (
	// ErrHouseholdNotFound is returned when the user has not described their household yet.
	ErrHouseholdNotFound = errors.New("household not found")

	// ErrInvalidHouseholdSize is returned when adults < 1 or children < 0.
	ErrInvalidHouseholdSize = errors.New("household needs at least one adult and no negative children")

	// ErrFinancialProfileNotFound is returned when the user has no financial profile.
	ErrFinancialProfileNotFound = errors.New("financial profile not found")

	// ErrNegativeCost is returned when a declared cost is negative.
	ErrNegativeCost = errors.New("costs cannot be negative")

	// ErrInvalidIncome is returned when the reference income is not positive.
	ErrInvalidIncome = errors.New("median family income must be greater than zero")

	// ErrSavingsTargetNotFound is returned when no target exists for the requested year.
	ErrSavingsTargetNotFound = errors.New("savings target not found")

	// ErrInvalidSavingsTarget is returned when the target amount is not positive.
	ErrInvalidSavingsTarget = errors.New("savings target must be greater than zero")

	// ErrInvalidYear is returned when the target year is out of range.
	ErrInvalidYear = errors.New("invalid year")
)

// HouseholdErrorCode defines error codes for household errors.
// Format: HHD-XXYYYY where XX is category and YYYY is specific error.
type HouseholdErrorCode string

const (
	// Household errors (01XXXX)
	ErrCodeHouseholdNotFound    HouseholdErrorCode = "HHD-010001"
	ErrCodeInvalidHouseholdSize HouseholdErrorCode = "HHD-010002"

	// Financial profile errors (02XXXX)
	ErrCodeFinancialProfileNotFound HouseholdErrorCode = "HHD-020001"
	ErrCodeNegativeCost             HouseholdErrorCode = "HHD-020002"
	ErrCodeInvalidIncome            HouseholdErrorCode = "HHD-020003"

	// Savings target errors (03XXXX)
	ErrCodeSavingsTargetNotFound HouseholdErrorCode = "HHD-030001"
	ErrCodeInvalidSavingsTarget  HouseholdErrorCode = "HHD-030002"
	ErrCodeInvalidYear           HouseholdErrorCode = "HHD-030003"
)

// HouseholdError represents a household error with code and message.
type HouseholdError struct {
	Code    HouseholdErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HouseholdError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *HouseholdError) Unwrap() error {
	return e.Err
}

// NewHouseholdError creates a new HouseholdError with the given code and message.
func NewHouseholdError(code HouseholdErrorCode, message string, err error) *HouseholdError {
	return &HouseholdError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
