package summary

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// GranularityAll selects every granularity at once.
const GranularityAll = "all"

// GetSummariesInput represents the input for reading summaries.
type GetSummariesInput struct {
	UserID      uuid.UUID
	Granularity string
}

// PeriodReport is a period summary with its evaluated warnings.
type PeriodReport struct {
	Summary  aggregation.PeriodSummary
	Warnings aggregation.WarningReport
}

// GranularityReport holds the chronologically ordered periods of one granularity.
type GranularityReport struct {
	Granularity aggregation.Granularity
	Periods     []PeriodReport
}

// GetSummariesOutput represents the output of reading summaries.
type GetSummariesOutput struct {
	Version int64
	Reports []GranularityReport
	Issues  []adapter.DataIssue
}

// GetSummariesUseCase returns the period summaries of a user.
type GetSummariesUseCase struct {
	engine *Engine
}

// NewGetSummariesUseCase creates a new GetSummariesUseCase instance.
func NewGetSummariesUseCase(engine *Engine) *GetSummariesUseCase {
	return &GetSummariesUseCase{
		engine: engine,
	}
}

// Execute returns the requested granularities, or all of them when Granularity is
// empty or "all".
func (uc *GetSummariesUseCase) Execute(ctx context.Context, input GetSummariesInput) (*GetSummariesOutput, error) {
	granularities, err := parseGranularities(input.Granularity)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.engine.Snapshot(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeSummaryInternalError,
			"failed to compute summaries",
			err,
		)
	}

	return buildOutput(snapshot, granularities, uc.engine.Thresholds()), nil
}

func parseGranularities(raw string) ([]aggregation.Granularity, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" || value == GranularityAll {
		return aggregation.Granularities(), nil
	}

	g := aggregation.Granularity(value)
	if !g.IsValid() {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: weekly, monthly, yearly or all",
			domainerror.ErrInvalidGranularity,
		)
	}
	return []aggregation.Granularity{g}, nil
}

func buildOutput(
	snapshot *adapter.SummarySnapshot,
	granularities []aggregation.Granularity,
	thresholds aggregation.ThresholdTable,
) *GetSummariesOutput {
	out := &GetSummariesOutput{
		Version: snapshot.Version,
		Reports: make([]GranularityReport, 0, len(granularities)),
		Issues:  snapshot.Issues,
	}

	for _, g := range granularities {
		summaries := snapshot.Summaries.For(g)
		table := thresholds.For(g)

		periods := make([]PeriodReport, 0, len(summaries))
		for _, s := range summaries {
			periods = append(periods, PeriodReport{
				Summary:  s,
				Warnings: aggregation.EvaluateSummary(s, table),
			})
		}
		out.Reports = append(out.Reports, GranularityReport{Granularity: g, Periods: periods})
	}

	return out
}
