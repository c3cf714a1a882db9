// Package advice contains the use cases that ask the advice service for budget guidance.
package advice

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

const (
	msgRateLimited  = "Rate limit exceeded. Please try again later."
	msgUnauthorized = "Unauthorized access. Please check your API key."
	msgUnavailable  = "The advice service is temporarily unavailable. Please try again later."
	msgFailed       = "An error occurred. Please try again."
)

// classifyError maps an advice service failure to a coded AdviceError.
func classifyError(err error) *domainerror.AdviceError {
	errStr := strings.ToLower(err.Error())

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domainerror.NewAdviceError(domainerror.ErrCodeAdviceUnavailable, msgUnavailable, err)
	}

	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return domainerror.NewAdviceError(domainerror.ErrCodeAdviceRateLimited, msgRateLimited, err)
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "permission denied") {
		return domainerror.NewAdviceError(domainerror.ErrCodeAdviceUnavailable, msgUnauthorized, err)
	}

	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "dial") ||
		strings.Contains(errStr, "timeout") || strings.Contains(errStr, "unavailable") ||
		strings.Contains(errStr, "503") {
		return domainerror.NewAdviceError(domainerror.ErrCodeAdviceUnavailable, msgUnavailable, err)
	}

	return domainerror.NewAdviceError(domainerror.ErrCodeAdviceFailed, msgFailed, err)
}
