package aggregation

// HighestExpenseCategory returns the category with the largest spend in s.
// Ties go to the alphabetically first category. ok is false when s has no expenses.
func HighestExpenseCategory(s PeriodSummary) (category string, amount float64, ok bool) {
	for c, v := range s.ExpensesByCategory {
		if !ok || v > amount || (v == amount && c < category) {
			category, amount, ok = c, v, true
		}
	}
	return category, amount, ok
}

// MaxExpensePeriod returns the summary with the highest TotalExpenses.
// The earliest summary in slice order wins ties. ok is false when no summary has expenses.
func MaxExpensePeriod(summaries []PeriodSummary) (PeriodSummary, bool) {
	var best PeriodSummary
	found := false
	for _, s := range summaries {
		if s.TotalExpenses <= 0 {
			continue
		}
		if !found || s.TotalExpenses > best.TotalExpenses {
			best, found = s, true
		}
	}
	return best, found
}
