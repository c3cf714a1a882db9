package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// SendBudgetAlertInput represents the input for a budget alert.
type SendBudgetAlertInput struct {
	UserID uuid.UUID
	Now    time.Time
}

// SendBudgetAlertOutput represents the output of a budget alert.
type SendBudgetAlertOutput struct {
	Sent      bool
	PeriodKey string
	Warnings  []string
	MessageID string
}

// SendBudgetAlertUseCase emails the current month's warnings to the user.
type SendBudgetAlertUseCase struct {
	engine   *Engine
	userRepo adapter.UserRepository
	mailer   adapter.BudgetAlertMailer
}

// NewSendBudgetAlertUseCase creates a new SendBudgetAlertUseCase instance.
// mailer may be nil when email delivery is not configured.
func NewSendBudgetAlertUseCase(
	engine *Engine,
	userRepo adapter.UserRepository,
	mailer adapter.BudgetAlertMailer,
) *SendBudgetAlertUseCase {
	return &SendBudgetAlertUseCase{
		engine:   engine,
		userRepo: userRepo,
		mailer:   mailer,
	}
}

// Execute sends the alert when the current month has warnings and does nothing otherwise.
func (uc *SendBudgetAlertUseCase) Execute(ctx context.Context, input SendBudgetAlertInput) (*SendBudgetAlertOutput, error) {
	snapshot, err := uc.engine.Snapshot(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeSummaryInternalError,
			"failed to compute summaries",
			err,
		)
	}

	monthKey := aggregation.MonthKey(input.Now.In(uc.engine.Location()))
	out := &SendBudgetAlertOutput{PeriodKey: monthKey, Warnings: []string{}}

	current, ok := findPeriod(snapshot.Summaries.Monthly, monthKey)
	if !ok {
		return out, nil
	}
	report := aggregation.EvaluateSummary(current, uc.engine.Thresholds().For(aggregation.GranularityMonthly))
	if !report.HasWarnings() {
		return out, nil
	}
	out.Warnings = report.Messages()

	if uc.mailer == nil || !uc.mailer.IsAvailable() {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeMailerUnavailable,
			"email delivery is not configured",
			domainerror.ErrMailerUnavailable,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil || user == nil || user.Email == "" {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeNoAlertRecipient,
			"no email address for this user",
			domainerror.ErrNoAlertRecipient,
		)
	}

	messageID, err := uc.mailer.SendBudgetAlert(ctx, adapter.BudgetAlertInput{
		To:        user.Email,
		Name:      user.Name,
		PeriodKey: monthKey,
		Warnings:  out.Warnings,
	})
	if err != nil {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeAlertNotSent,
			fmt.Sprintf("failed to send budget alert for %s", monthKey),
			err,
		)
	}

	slog.InfoContext(ctx, "budget alert sent",
		"user_id", input.UserID,
		"period", monthKey,
		"warnings", len(out.Warnings),
		"message_id", messageID,
	)

	out.Sent = true
	out.MessageID = messageID
	return out, nil
}
