package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func keys(summaries []PeriodSummary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.PeriodKey
	}
	return out
}

func summariesFor(periodKeys ...string) []PeriodSummary {
	out := make([]PeriodSummary, len(periodKeys))
	for i, k := range periodKeys {
		out[i] = PeriodSummary{PeriodKey: k}
	}
	return out
}

func TestSortChronologically(t *testing.T) {
	tests := []struct {
		name  string
		g     Granularity
		input []string
		want  []string
	}{
		{
			name:  "weekly numeric not lexical",
			g:     GranularityWeekly,
			input: []string{"Week 10 2025", "Week 9 2025", "Week 1 2026", "Week 53 2024"},
			want:  []string{"Week 53 2024", "Week 9 2025", "Week 10 2025", "Week 1 2026"},
		},
		{
			name:  "monthly by calendar",
			g:     GranularityMonthly,
			input: []string{"Mar 2025", "Dec 2024", "Feb 2025", "Jan 2025"},
			want:  []string{"Dec 2024", "Jan 2025", "Feb 2025", "Mar 2025"},
		},
		{
			name:  "yearly",
			g:     GranularityYearly,
			input: []string{"2025", "2023", "2024"},
			want:  []string{"2023", "2024", "2025"},
		},
		{
			name:  "malformed keys last",
			g:     GranularityMonthly,
			input: []string{"garbage", "Feb 2025", "March 2025", "Jan 2025"},
			want:  []string{"Jan 2025", "Feb 2025", "March 2025", "garbage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := summariesFor(tt.input...)

			sorted := SortChronologically(input, tt.g)

			assert.Equal(t, tt.want, keys(sorted))
			assert.Equal(t, tt.input, keys(input), "input must not be reordered")
		})
	}
}

func TestPeriodOrdinal(t *testing.T) {
	tests := []struct {
		g      Granularity
		key    string
		want   int
		wantOK bool
	}{
		{GranularityWeekly, "Week 12 2025", 202512, true},
		{GranularityWeekly, "Week 0 2025", 0, false},
		{GranularityWeekly, "Week 12 2025 extra", 0, false},
		{GranularityWeekly, "Mar 2025", 0, false},
		{GranularityMonthly, "Jan 2025", 2025 * 12, true},
		{GranularityMonthly, "Dec 2024", 2024*12 + 11, true},
		{GranularityMonthly, "2025", 0, false},
		{GranularityYearly, "2025", 2025, true},
		{GranularityYearly, "25", 0, false},
		{GranularityYearly, "Week 1 2025", 0, false},
		{Granularity("daily"), "2025", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.g)+"/"+tt.key, func(t *testing.T) {
			got, ok := PeriodOrdinal(tt.g, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummaries_Sorted(t *testing.T) {
	s := Summaries{
		Weekly:  summariesFor("Week 10 2025", "Week 2 2025"),
		Monthly: summariesFor("Oct 2025", "Feb 2025"),
		Yearly:  summariesFor("2025", "2024"),
	}

	sorted := s.Sorted()

	assert.Equal(t, []string{"Week 2 2025", "Week 10 2025"}, keys(sorted.Weekly))
	assert.Equal(t, []string{"Feb 2025", "Oct 2025"}, keys(sorted.Monthly))
	assert.Equal(t, []string{"2024", "2025"}, keys(sorted.Yearly))
}
