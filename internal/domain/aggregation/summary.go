package aggregation

import "github.com/budget-tracker/backend/internal/domain/entity"

// PeriodSummary holds the totals of one period instance.
//
// TotalIncome and TotalExpenses only ever include income and expense transactions.
// Savings are tracked apart in TotalSavings.
type PeriodSummary struct {
	PeriodKey          string
	TotalIncome        float64
	TotalExpenses      float64
	TotalSavings       float64
	IncomeByCategory   map[string]float64
	ExpensesByCategory map[string]float64
	SavingsByCategory  map[string]float64
	TransactionCount   int
}

func newPeriodSummary(key string) *PeriodSummary {
	return &PeriodSummary{
		PeriodKey:          key,
		IncomeByCategory:   make(map[string]float64),
		ExpensesByCategory: make(map[string]float64),
		SavingsByCategory:  make(map[string]float64),
	}
}

// Balance is what remains of the income once expenses and savings are taken out.
func (s PeriodSummary) Balance() float64 {
	return s.TotalIncome - s.TotalExpenses - s.TotalSavings
}

func (s *PeriodSummary) add(tx entity.Transaction) {
	switch tx.Kind {
	case entity.TransactionKindIncome:
		s.TotalIncome += tx.Amount
		s.IncomeByCategory[tx.Category] += tx.Amount
	case entity.TransactionKindExpense:
		s.TotalExpenses += tx.Amount
		s.ExpensesByCategory[tx.Category] += tx.Amount
	case entity.TransactionKindSavings:
		s.TotalSavings += tx.Amount
		s.SavingsByCategory[tx.Category] += tx.Amount
	default:
		return
	}
	s.TransactionCount++
}
