// Package jobs wraps the ingestion pipeline in a durable riverqueue/river
// worker so a document upload survives a process restart mid-parse.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/ingestion"
)

// ImportJobArgs is the durable, JSON-serializable payload for one
// ingestion run. OwnerEmail is carried along so the worker can notify the
// owner on a permanent failure without needing a User lookup of its own.
type ImportJobArgs struct {
	OwnerID    string
	OwnerEmail string
	AccountID  uuid.UUID
	Filename   string
	Content    []byte
	MimeType   string
}

// Kind identifies this job type in the river_job table.
func (ImportJobArgs) Kind() string { return "ingest_import" }

// ImportWorker runs the ingestion pipeline for one queued document.
type ImportWorker struct {
	river.WorkerDefaults[ImportJobArgs]
	ingestionUseCase *ingestion.UseCase
	emailService     adapter.EmailService
}

// NewImportWorker creates a new ImportWorker instance. emailService may be
// nil, in which case permanent failures are only logged.
func NewImportWorker(ingestionUseCase *ingestion.UseCase, emailService adapter.EmailService) *ImportWorker {
	return &ImportWorker{ingestionUseCase: ingestionUseCase, emailService: emailService}
}

// Work executes the queued ingestion run. A failure here leaves the
// Import record in whatever terminal state ingestion.UseCase.Run already
// set before returning its error, so river's retry does not re-run a
// completed import.
func (w *ImportWorker) Work(ctx context.Context, job *river.Job[ImportJobArgs]) error {
	args := job.Args

	result, err := w.ingestionUseCase.Run(ctx, ingestion.Input{
		OwnerID:   args.OwnerID,
		AccountID: args.AccountID,
		Filename:  args.Filename,
		Content:   args.Content,
		MimeType:  args.MimeType,
	})
	if err != nil {
		slog.Error("ingest_import job failed", "ownerId", args.OwnerID, "accountId", args.AccountID, "error", err, "attempt", job.Attempt, "maxAttempts", job.MaxAttempts)

		if w.emailService != nil && args.OwnerEmail != "" && job.Attempt >= job.MaxAttempts {
			if qerr := w.emailService.QueueImportFailedEmail(ctx, adapter.QueueImportFailedInput{
				OwnerEmail: args.OwnerEmail,
				Filename:   args.Filename,
				Reason:     err.Error(),
			}); qerr != nil {
				slog.Error("failed to queue import-failed notification", "error", qerr)
			}
		}

		return fmt.Errorf("ingest_import: %w", err)
	}

	slog.Info("ingest_import job completed",
		"importId", result.ImportID, "created", result.Created, "skipped", result.Skipped, "errors", len(result.Errors))
	return nil
}
