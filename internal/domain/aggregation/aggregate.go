package aggregation

import (
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// Rejection describes a transaction left out of aggregation.
type Rejection struct {
	TransactionID uuid.UUID
	Reason        error
}

// Partition splits txs into the transactions usable for aggregation and the rejected ones.
// Callers use the rejections to surface data-quality problems.
func Partition(txs []entity.Transaction) ([]entity.Transaction, []Rejection) {
	valid := make([]entity.Transaction, 0, len(txs))
	var rejected []Rejection
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			rejected = append(rejected, Rejection{TransactionID: tx.ID, Reason: err})
			continue
		}
		valid = append(valid, tx)
	}
	return valid, rejected
}

// Localize returns a copy of txs with every timestamp expressed in loc.
// Period keys are derived from the wall-clock date, so this fixes which day a
// transaction belongs to.
func Localize(txs []entity.Transaction, loc *time.Location) []entity.Transaction {
	out := make([]entity.Transaction, len(txs))
	copy(out, txs)
	if loc == nil {
		return out
	}
	for i := range out {
		if !out[i].OccurredAt.IsZero() {
			out[i].OccurredAt = out[i].OccurredAt.In(loc)
		}
	}
	return out
}

// Aggregate folds txs into one summary per period key of granularity g.
//
// Invalid transactions are skipped. Summaries come back in order of first
// appearance; use SortChronologically for presentation order. An unknown
// granularity yields no summaries.
func Aggregate(txs []entity.Transaction, g Granularity) []PeriodSummary {
	if !g.IsValid() {
		return nil
	}

	buckets := make(map[string]*PeriodSummary)
	var order []string
	for _, tx := range txs {
		if tx.Validate() != nil {
			continue
		}
		key := g.Key(tx.OccurredAt)
		bucket, ok := buckets[key]
		if !ok {
			bucket = newPeriodSummary(key)
			buckets[key] = bucket
			order = append(order, key)
		}
		bucket.add(tx)
	}

	summaries := make([]PeriodSummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, *buckets[key])
	}
	return summaries
}

// Summaries groups the output of every granularity.
type Summaries struct {
	Weekly  []PeriodSummary
	Monthly []PeriodSummary
	Yearly  []PeriodSummary
}

// AggregateAll aggregates txs at every granularity.
func AggregateAll(txs []entity.Transaction) Summaries {
	return Summaries{
		Weekly:  Aggregate(txs, GranularityWeekly),
		Monthly: Aggregate(txs, GranularityMonthly),
		Yearly:  Aggregate(txs, GranularityYearly),
	}
}

// For returns the summaries of granularity g.
func (s Summaries) For(g Granularity) []PeriodSummary {
	switch g {
	case GranularityWeekly:
		return s.Weekly
	case GranularityMonthly:
		return s.Monthly
	case GranularityYearly:
		return s.Yearly
	}
	return nil
}

// Sorted returns a copy of s with every granularity in chronological order.
func (s Summaries) Sorted() Summaries {
	return Summaries{
		Weekly:  SortChronologically(s.Weekly, GranularityWeekly),
		Monthly: SortChronologically(s.Monthly, GranularityMonthly),
		Yearly:  SortChronologically(s.Yearly, GranularityYearly),
	}
}
