package error

import (
	"errors"
	"strings"
)

// Account and session errors.
var (
	// ErrUserNotFound is returned by user lookups that match no account.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when the email, compared lower-cased,
	// already belongs to an account.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials hides which of email or password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for tokens with a bad signature, the wrong
	// type, or an account that no longer exists.
	ErrInvalidToken = errors.New("invalid token")

	// ErrRefreshTokenReused is returned when a signed refresh token that was
	// already rotated or logged out is presented again. Every session of the
	// user is revoked when this happens.
	ErrRefreshTokenReused = errors.New("refresh token reused")

	// ErrWeakPassword is returned for passwords shorter than eight characters
	// or longer than bcrypt accepts.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	ErrInvalidEmail = errors.New("invalid email format")
)

// AuthErrorCode identifies an account or session failure as AUTH-XXYYYY, where
// XX groups the failure and YYYY names it.
type AuthErrorCode string

const (
	// Sign-up (01XXXX)
	ErrCodeEmailExists   AuthErrorCode = "AUTH-010001"
	ErrCodeWeakPassword  AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010005"

	// Sign-in and throttling (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// Sessions (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
	ErrCodeTokenReused  AuthErrorCode = "AUTH-030004"
)

// SignInRequired reports whether the client has to sign in again to recover,
// which holds for wrong credentials and for every session code.
func (c AuthErrorCode) SignInRequired() bool {
	return c == ErrCodeInvalidCredentials || strings.HasPrefix(string(c), "AUTH-03")
}

// AuthError is an account or session failure with the code the API reports.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates an AuthError. err is the sentinel callers match with errors.Is.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
