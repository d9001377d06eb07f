// Package adapter defines interfaces that will be implemented in the integration layer.
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

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueImportFailedEmail queues a notification that an Import transitioned to failed.
	QueueImportFailedEmail(ctx context.Context, input QueueImportFailedInput) error

	// QueueWeeklyDigestEmail queues a weekly spending digest.
	QueueWeeklyDigestEmail(ctx context.Context, input QueueWeeklyDigestInput) error
}

// QueueImportFailedInput represents the input for queueing an import-failure notification.
type QueueImportFailedInput struct {
	OwnerEmail string
	OwnerName  string
	Filename   string
	Reason     string
}

// QueueWeeklyDigestInput represents the input for queueing a weekly digest email.
type QueueWeeklyDigestInput struct {
	OwnerEmail    string
	OwnerName     string
	Month         string
	TotalExpenses int64
	TotalIncome   int64
}
