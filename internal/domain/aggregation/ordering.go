package aggregation

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// SortChronologically returns a copy of summaries ordered by the period each key
// denotes, oldest first. Keys that cannot be read for granularity g go last, in
// key order.
func SortChronologically(summaries []PeriodSummary, g Granularity) []PeriodSummary {
	type ranked struct {
		summary PeriodSummary
		ordinal int
		ok      bool
	}

	items := make([]ranked, len(summaries))
	for i, s := range summaries {
		ordinal, ok := PeriodOrdinal(g, s.PeriodKey)
		items[i] = ranked{summary: s, ordinal: ordinal, ok: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return a.summary.PeriodKey < b.summary.PeriodKey
		}
		return a.ordinal < b.ordinal
	})

	out := make([]PeriodSummary, len(items))
	for i, item := range items {
		out[i] = item.summary
	}
	return out
}

// PeriodOrdinal turns a period key into an integer that grows with time.
// It reports false when key is not a well-formed key of granularity g.
func PeriodOrdinal(g Granularity, key string) (int, bool) {
	switch g {
	case GranularityWeekly:
		var week, year int
		if _, err := fmt.Sscanf(key, "Week %d %d", &week, &year); err != nil {
			return 0, false
		}
		if week < 1 || week > 54 || fmt.Sprintf("Week %d %04d", week, year) != key {
			return 0, false
		}
		return year*100 + week, true
	case GranularityMonthly:
		t, err := time.Parse(monthKeyLayout, key)
		if err != nil {
			return 0, false
		}
		return t.Year()*12 + int(t.Month()) - 1, true
	case GranularityYearly:
		if len(key) != len(yearKeyLayout) {
			return 0, false
		}
		year, err := strconv.Atoi(key)
		if err != nil || year < 0 {
			return 0, false
		}
		return year, true
	}
	return 0, false
}
