package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/email/templates"
)

const (
	templateBudgetAlert = "budget_alert"

	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
)

// Renderer renders a named template to its HTML and plain text bodies.
// *templates.Renderer implements it.
type Renderer interface {
	Render(templateName string, data any) (html string, text string, err error)
}

// AlertService renders budget alerts and hands them to an EmailSender,
// retrying temporary failures.
type AlertService struct {
	sender      adapter.EmailSender
	renderer    Renderer
	appBaseURL  string
	maxAttempts int
	retryDelay  time.Duration
}

var _ adapter.BudgetAlertMailer = (*AlertService)(nil)

// AlertServiceOption customizes an AlertService.
type AlertServiceOption func(*AlertService)

// WithRetry sets how many attempts are made and the delay before the first retry.
// The delay doubles after each temporary failure.
func WithRetry(maxAttempts int, delay time.Duration) AlertServiceOption {
	return func(s *AlertService) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		if delay >= 0 {
			s.retryDelay = delay
		}
	}
}

// NewAlertService creates a new budget alert mailer. sender may be nil when
// email delivery is not configured.
func NewAlertService(sender adapter.EmailSender, renderer Renderer, appBaseURL string, opts ...AlertServiceOption) *AlertService {
	s := &AlertService{
		sender:      sender,
		renderer:    renderer,
		appBaseURL:  appBaseURL,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsAvailable checks if delivery is configured.
func (s *AlertService) IsAvailable() bool {
	return s.sender != nil && s.renderer != nil
}

// SendBudgetAlert renders the alert and delivers it.
func (s *AlertService) SendBudgetAlert(ctx context.Context, input adapter.BudgetAlertInput) (string, error) {
	if !s.IsAvailable() {
		return "", domainerror.NewEmailError(domainerror.ErrCodeEmailSendFailed, "email delivery is not configured", domainerror.ErrEmailSendFailed)
	}

	html, text, err := s.renderer.Render(templateBudgetAlert, templates.BudgetAlertData{
		UserName:     input.Name,
		PeriodKey:    input.PeriodKey,
		Warnings:     input.Warnings,
		DashboardURL: s.appBaseURL,
	})
	if err != nil {
		return "", domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render budget alert",
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	message := adapter.SendEmailInput{
		To:      input.To,
		Name:    input.Name,
		Subject: fmt.Sprintf("Budget alert for %s", input.PeriodKey),
		HTML:    html,
		Text:    text,
	}

	logger := slog.With("recipient", input.To, "period", input.PeriodKey)
	delay := s.retryDelay

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		result, err := s.sender.Send(ctx, message)
		if err == nil {
			logger.InfoContext(ctx, "Budget alert sent", "resend_id", result.ResendID, "attempt", attempt)
			return result.ResendID, nil
		}
		lastErr = err

		if errors.Is(err, domainerror.ErrPermanentEmailFailure) {
			logger.WarnContext(ctx, "Budget alert permanently failed", "attempt", attempt, "error", err)
			return "", err
		}

		if attempt == s.maxAttempts {
			break
		}
		logger.InfoContext(ctx, "Budget alert scheduled for retry", "attempt", attempt, "delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("budget alert not sent after %d attempts: %w", s.maxAttempts, lastErr)
}
