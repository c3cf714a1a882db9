package summary

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// recommendedSavingsRate is the share of the running balance suggested as monthly savings.
const recommendedSavingsRate = 0.2

// GetInsightsInput represents the input for household budget insights.
type GetInsightsInput struct {
	UserID uuid.UUID
	Now    time.Time
}

// GetInsightsOutput represents household budget insights.
type GetInsightsOutput struct {
	TotalIncome        float64
	TotalExpenses      float64
	TotalSavings       float64
	Balance            float64
	HouseholdMembers   int
	ExpensePerMember   float64
	RecommendedSavings float64

	// CurrentMonth is nil when nothing was recorded this month.
	CurrentMonth         *aggregation.PeriodSummary
	CurrentMonthWarnings aggregation.WarningReport
	TopExpenseCategory   string
	TopExpenseAmount     float64
	PeakExpenseWeek      *aggregation.PeriodSummary
	PeakExpenseMonth     *aggregation.PeriodSummary
}

// GetInsightsUseCase derives household budget insights from the summaries.
type GetInsightsUseCase struct {
	engine        *Engine
	householdRepo adapter.HouseholdRepository
}

// NewGetInsightsUseCase creates a new GetInsightsUseCase instance.
func NewGetInsightsUseCase(engine *Engine, householdRepo adapter.HouseholdRepository) *GetInsightsUseCase {
	return &GetInsightsUseCase{
		engine:        engine,
		householdRepo: householdRepo,
	}
}

// Execute computes the insights as of input.Now.
func (uc *GetInsightsUseCase) Execute(ctx context.Context, input GetInsightsInput) (*GetInsightsOutput, error) {
	var (
		snapshot  *adapter.SummarySnapshot
		household *entity.Household
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot, err = uc.engine.Snapshot(gctx, input.UserID)
		if err != nil {
			return domainerror.NewSummaryError(
				domainerror.ErrCodeSummaryInternalError,
				"failed to compute summaries",
				err,
			)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		household, err = uc.householdRepo.FindByUser(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load household: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	members := 1
	if household != nil {
		members = household.Members()
	}

	out := &GetInsightsOutput{HouseholdMembers: members}
	for _, year := range snapshot.Summaries.Yearly {
		out.TotalIncome += year.TotalIncome
		out.TotalExpenses += year.TotalExpenses
		out.TotalSavings += year.TotalSavings
	}
	out.Balance = out.TotalIncome - out.TotalExpenses
	out.ExpensePerMember = out.TotalExpenses / float64(members)
	out.RecommendedSavings = math.Max(out.Balance, 0) * recommendedSavingsRate

	monthKey := aggregation.MonthKey(input.Now.In(uc.engine.Location()))
	if current, ok := findPeriod(snapshot.Summaries.Monthly, monthKey); ok {
		out.CurrentMonth = &current
		out.CurrentMonthWarnings = aggregation.EvaluateSummary(current, uc.engine.Thresholds().For(aggregation.GranularityMonthly))
		out.TopExpenseCategory, out.TopExpenseAmount, _ = aggregation.HighestExpenseCategory(current)
	}

	if week, ok := aggregation.MaxExpensePeriod(snapshot.Summaries.Weekly); ok {
		out.PeakExpenseWeek = &week
	}
	if month, ok := aggregation.MaxExpensePeriod(snapshot.Summaries.Monthly); ok {
		out.PeakExpenseMonth = &month
	}

	return out, nil
}

func findPeriod(summaries []aggregation.PeriodSummary, key string) (aggregation.PeriodSummary, bool) {
	for _, s := range summaries {
		if s.PeriodKey == key {
			return s, true
		}
	}
	return aggregation.PeriodSummary{}, false
}
