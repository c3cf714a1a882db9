package summary

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// RefreshSummariesInput represents the input for a refresh.
type RefreshSummariesInput struct {
	UserID uuid.UUID
}

// RefreshSummariesOutput represents the output of a refresh.
type RefreshSummariesOutput struct {
	Version int64
}

// Publisher pushes a refreshed report of every granularity to the connected
// clients of a user. The report is the one GetSummaries would return.
type Publisher interface {
	Publish(ctx context.Context, userID uuid.UUID, output *GetSummariesOutput) error
}

// RefreshSummariesUseCase recomputes a user's summaries after their
// transactions change and pushes the result to connected clients.
//
// Every refresh gets a higher version than the previous one. Clients keep the
// payload with the highest version they have seen.
type RefreshSummariesUseCase struct {
	engine    *Engine
	publisher Publisher
}

// NewRefreshSummariesUseCase creates a new RefreshSummariesUseCase instance.
// publisher may be nil.
func NewRefreshSummariesUseCase(engine *Engine, publisher Publisher) *RefreshSummariesUseCase {
	return &RefreshSummariesUseCase{
		engine:    engine,
		publisher: publisher,
	}
}

// Execute performs the refresh.
func (uc *RefreshSummariesUseCase) Execute(ctx context.Context, input RefreshSummariesInput) (*RefreshSummariesOutput, error) {
	snapshot, err := uc.engine.Rebuild(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeSummaryInternalError,
			"failed to refresh summaries",
			err,
		)
	}

	if uc.publisher != nil {
		output := buildOutput(snapshot, aggregation.Granularities(), uc.engine.Thresholds())
		if err := uc.publisher.Publish(ctx, input.UserID, output); err != nil {
			slog.WarnContext(ctx, "failed to publish summaries", "user_id", input.UserID, "error", err)
		}
	}

	return &RefreshSummariesOutput{Version: snapshot.Version}, nil
}

// TransactionsChanged implements adapter.TransactionChangeListener.
func (uc *RefreshSummariesUseCase) TransactionsChanged(ctx context.Context, userID uuid.UUID) {
	if _, err := uc.Execute(ctx, RefreshSummariesInput{UserID: userID}); err != nil {
		slog.ErrorContext(ctx, "summary refresh failed", "user_id", userID, "error", err)
	}
}

var _ adapter.TransactionChangeListener = (*RefreshSummariesUseCase)(nil)
