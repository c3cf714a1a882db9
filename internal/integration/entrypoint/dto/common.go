// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// Money rounds an amount to cents for display.
func Money(v float64) float64 {
	return decimalRound(v, 2)
}

// MoneyMap rounds every amount of m to cents. A nil map becomes an empty one.
func MoneyMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = Money(v)
	}
	return out
}

// Percent rounds a percentage to one decimal place.
func Percent(v float64) float64 {
	return decimalRound(v, 1)
}

// FormatTime renders t in RFC 3339, UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func decimalRound(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
