package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSavingsPlan(t *testing.T) {
	tests := []struct {
		name           string
		year           int
		target         float64
		current        float64
		now            time.Time
		wantRemaining  float64
		wantMonthsLeft int
		wantMonthly    float64
		wantAchieved   bool
	}{
		{
			name:           "march leaves nine months",
			year:           2025,
			target:         12000,
			current:        3000,
			now:            time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			wantRemaining:  9000,
			wantMonthsLeft: 9,
			wantMonthly:    1000,
		},
		{
			name:           "december keeps one month",
			year:           2025,
			target:         1200,
			current:        600,
			now:            time.Date(2025, time.December, 2, 0, 0, 0, 0, time.UTC),
			wantRemaining:  600,
			wantMonthsLeft: 1,
			wantMonthly:    600,
		},
		{
			name:           "future year spreads over twelve months",
			year:           2026,
			target:         2400,
			now:            time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantRemaining:  2400,
			wantMonthsLeft: 12,
			wantMonthly:    200,
		},
		{
			name:           "past year gives no suggestion",
			year:           2024,
			target:         2400,
			current:        1000,
			now:            time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantRemaining:  1400,
			wantMonthsLeft: 0,
			wantMonthly:    0,
		},
		{
			name:           "overshoot is achieved",
			year:           2025,
			target:         1000,
			current:        1500,
			now:            time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantRemaining:  0,
			wantMonthsLeft: 6,
			wantMonthly:    0,
			wantAchieved:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewSavingsPlan(tt.year, tt.target, tt.current, tt.now)

			assert.InDelta(t, tt.wantRemaining, plan.Remaining, 1e-9)
			assert.Equal(t, tt.wantMonthsLeft, plan.MonthsLeft)
			assert.InDelta(t, tt.wantMonthly, plan.MonthlySuggestion, 1e-9)
			assert.Equal(t, tt.wantAchieved, plan.Achieved)
		})
	}
}
