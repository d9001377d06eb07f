// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueImportFailedEmail queues a notification that an Import transitioned
// to failed, so the owner knows to re-upload rather than waiting forever.
func (s *Service) QueueImportFailedEmail(ctx context.Context, input adapter.QueueImportFailedInput) error {
	subject := fmt.Sprintf("ledgerd couldn't import %s", input.Filename)

	templateData := map[string]interface{}{
		"owner_name": input.OwnerName,
		"filename":   input.Filename,
		"reason":     input.Reason,
	}

	job := entity.NewEmailJob(
		entity.TemplateImportFailed,
		input.OwnerEmail,
		input.OwnerName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue import-failed email",
			err,
		)
	}

	return nil
}

// QueueWeeklyDigestEmail queues a weekly spending summary for one owner.
func (s *Service) QueueWeeklyDigestEmail(ctx context.Context, input adapter.QueueWeeklyDigestInput) error {
	subject := fmt.Sprintf("Your %s spending digest", input.Month)

	templateData := map[string]interface{}{
		"owner_name":     input.OwnerName,
		"month":          input.Month,
		"total_expenses": formatCents(input.TotalExpenses),
		"total_income":   formatCents(input.TotalIncome),
	}

	job := entity.NewEmailJob(
		entity.TemplateWeeklyDigest,
		input.OwnerEmail,
		input.OwnerName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue weekly digest email",
			err,
		)
	}

	return nil
}

// formatCents renders an int64 cents amount as a fixed-point currency
// string for display in an email body. decimal.Decimal avoids the
// float64 rounding a naive division would introduce.
func formatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
