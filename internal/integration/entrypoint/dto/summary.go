package dto

import (
	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/summary"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
)

// PeriodSummaryResponse is one period of a summary report.
type PeriodSummaryResponse struct {
	PeriodKey          string             `json:"period_key"`
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
	TotalSavings       float64            `json:"total_savings"`
	Balance            float64            `json:"balance"`
	IncomeByCategory   map[string]float64 `json:"income_by_category"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	SavingsByCategory  map[string]float64 `json:"savings_by_category"`
	TransactionCount   int                `json:"transaction_count"`
}

// CategoryWarningResponse is one category over its threshold.
type CategoryWarningResponse struct {
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	ActualPercent    float64 `json:"actual_percent"`
	ThresholdPercent float64 `json:"threshold_percent"`
	Message          string  `json:"message"`
}

// WarningReportResponse is the warning outcome of one period.
type WarningReportResponse struct {
	Warnings         []CategoryWarningResponse `json:"warnings"`
	NoIncomeRecorded bool                      `json:"no_income_recorded"`
	Unmeasured       []string                  `json:"unmeasured,omitempty"`
	Messages         []string                  `json:"messages"`
}

// PeriodReportResponse pairs a period summary with its warnings.
type PeriodReportResponse struct {
	PeriodSummaryResponse
	Warnings WarningReportResponse `json:"warnings"`
}

// GranularityReportResponse lists the periods of one granularity in chronological order.
type GranularityReportResponse struct {
	Granularity string                 `json:"granularity"`
	Periods     []PeriodReportResponse `json:"periods"`
}

// DataIssueResponse describes a stored transaction left out of the summaries.
type DataIssueResponse struct {
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
}

// SummariesResponse represents the response of GET /summaries.
type SummariesResponse struct {
	Version int64                       `json:"version"`
	Reports []GranularityReportResponse `json:"reports"`
	Issues  []DataIssueResponse         `json:"issues"`
}

// InsightsResponse represents the response of GET /summaries/insights.
type InsightsResponse struct {
	TotalIncome          float64                `json:"total_income"`
	TotalExpenses        float64                `json:"total_expenses"`
	TotalSavings         float64                `json:"total_savings"`
	Balance              float64                `json:"balance"`
	HouseholdMembers     int                    `json:"household_members"`
	ExpensePerMember     float64                `json:"expense_per_member"`
	RecommendedSavings   float64                `json:"recommended_savings"`
	CurrentMonth         *PeriodSummaryResponse `json:"current_month"`
	CurrentMonthWarnings WarningReportResponse  `json:"current_month_warnings"`
	TopExpenseCategory   string                 `json:"top_expense_category,omitempty"`
	TopExpenseAmount     float64                `json:"top_expense_amount"`
	PeakExpenseWeek      *PeriodSummaryResponse `json:"peak_expense_week"`
	PeakExpenseMonth     *PeriodSummaryResponse `json:"peak_expense_month"`
}

// BudgetAlertResponse represents the response of POST /summaries/alerts.
type BudgetAlertResponse struct {
	Sent      bool     `json:"sent"`
	PeriodKey string   `json:"period_key"`
	Warnings  []string `json:"warnings"`
	MessageID string   `json:"message_id,omitempty"`
}

// ToPeriodSummaryResponse converts a period summary, rounding amounts to cents.
func ToPeriodSummaryResponse(s aggregation.PeriodSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		PeriodKey:          s.PeriodKey,
		TotalIncome:        Money(s.TotalIncome),
		TotalExpenses:      Money(s.TotalExpenses),
		TotalSavings:       Money(s.TotalSavings),
		Balance:            Money(s.Balance()),
		IncomeByCategory:   MoneyMap(s.IncomeByCategory),
		ExpensesByCategory: MoneyMap(s.ExpensesByCategory),
		SavingsByCategory:  MoneyMap(s.SavingsByCategory),
		TransactionCount:   s.TransactionCount,
	}
}

func toPeriodSummaryPtr(s *aggregation.PeriodSummary) *PeriodSummaryResponse {
	if s == nil {
		return nil
	}
	out := ToPeriodSummaryResponse(*s)
	return &out
}

// ToWarningReportResponse converts a warning report.
func ToWarningReportResponse(r aggregation.WarningReport) WarningReportResponse {
	warnings := make([]CategoryWarningResponse, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = CategoryWarningResponse{
			Category:         w.Category,
			Amount:           Money(w.Amount),
			ActualPercent:    Percent(w.ActualPercent),
			ThresholdPercent: Percent(w.ThresholdPercent),
			Message:          w.Message(),
		}
	}
	return WarningReportResponse{
		Warnings:         warnings,
		NoIncomeRecorded: r.NoIncomeRecorded,
		Unmeasured:       r.Unmeasured,
		Messages:         r.Messages(),
	}
}

// ToDataIssues converts the data-quality issues of a snapshot.
func ToDataIssues(issues []adapter.DataIssue) []DataIssueResponse {
	out := make([]DataIssueResponse, len(issues))
	for i, issue := range issues {
		out[i] = DataIssueResponse{TransactionID: issue.TransactionID.String(), Reason: issue.Reason}
	}
	return out
}

// ToSummariesResponse converts the output of GetSummaries.
func ToSummariesResponse(output *summary.GetSummariesOutput) SummariesResponse {
	reports := make([]GranularityReportResponse, len(output.Reports))
	for i, report := range output.Reports {
		periods := make([]PeriodReportResponse, len(report.Periods))
		for j, p := range report.Periods {
			periods[j] = PeriodReportResponse{
				PeriodSummaryResponse: ToPeriodSummaryResponse(p.Summary),
				Warnings:              ToWarningReportResponse(p.Warnings),
			}
		}
		reports[i] = GranularityReportResponse{
			Granularity: string(report.Granularity),
			Periods:     periods,
		}
	}
	return SummariesResponse{
		Version: output.Version,
		Reports: reports,
		Issues:  ToDataIssues(output.Issues),
	}
}

// ToInsightsResponse converts the output of GetInsights.
func ToInsightsResponse(output *summary.GetInsightsOutput) InsightsResponse {
	return InsightsResponse{
		TotalIncome:          Money(output.TotalIncome),
		TotalExpenses:        Money(output.TotalExpenses),
		TotalSavings:         Money(output.TotalSavings),
		Balance:              Money(output.Balance),
		HouseholdMembers:     output.HouseholdMembers,
		ExpensePerMember:     Money(output.ExpensePerMember),
		RecommendedSavings:   Money(output.RecommendedSavings),
		CurrentMonth:         toPeriodSummaryPtr(output.CurrentMonth),
		CurrentMonthWarnings: ToWarningReportResponse(output.CurrentMonthWarnings),
		TopExpenseCategory:   output.TopExpenseCategory,
		TopExpenseAmount:     Money(output.TopExpenseAmount),
		PeakExpenseWeek:      toPeriodSummaryPtr(output.PeakExpenseWeek),
		PeakExpenseMonth:     toPeriodSummaryPtr(output.PeakExpenseMonth),
	}
}

// ToBudgetAlertResponse converts the output of SendBudgetAlert.
func ToBudgetAlertResponse(output *summary.SendBudgetAlertOutput) BudgetAlertResponse {
	warnings := output.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return BudgetAlertResponse{
		Sent:      output.Sent,
		PeriodKey: output.PeriodKey,
		Warnings:  warnings,
		MessageID: output.MessageID,
	}
}
