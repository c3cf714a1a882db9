package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// BudgetAlertInput carries what a budget alert email reports.
type BudgetAlertInput struct {
	To        string
	Name      string
	PeriodKey string
	Warnings  []string
}

// BudgetAlertMailer renders and delivers budget alert emails.
type BudgetAlertMailer interface {
	// SendBudgetAlert delivers the alert and returns the provider message id.
	SendBudgetAlert(ctx context.Context, input BudgetAlertInput) (string, error)

	// IsAvailable checks if delivery is configured.
	IsAvailable() bool
}
