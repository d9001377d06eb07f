package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/ingestion"
)

// DefaultQueue is the only queue ledgerd needs: everything it enqueues is
// an ingestion run.
const DefaultQueue = "ingestion"

// Client wraps a river.Client[pgx.Tx] configured with the single worker
// this system needs. It intentionally does not carry the donor's
// sync/analysis/maintenance/backup job families — ledgerd only durably
// queues document ingestion.
type Client struct {
	river *river.Client[pgx.Tx]
}

// NewClient builds a river client bound to dbPool, registering
// ImportWorker against DefaultQueue. emailService may be nil.
func NewClient(dbPool *pgxpool.Pool, ingestionUseCase *ingestion.UseCase, emailService adapter.EmailService) (*Client, error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewImportWorker(ingestionUseCase, emailService))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			DefaultQueue: {MaxWorkers: 5},
		},
		Workers:              workers,
		JobTimeout:           2 * time.Minute,
		MaxAttempts:          5,
		RescueStuckJobsAfter: 10 * time.Minute,
		RetryPolicy:          &river.DefaultClientRetryPolicy{},
	})
	if err != nil {
		return nil, fmt.Errorf("jobs: failed to build river client: %w", err)
	}

	return &Client{river: riverClient}, nil
}

// Start begins polling for and running queued jobs. Blocks until ctx is
// canceled or Stop is called.
func (c *Client) Start(ctx context.Context) error {
	return c.river.Start(ctx)
}

// Stop gracefully drains in-flight jobs before returning.
func (c *Client) Stop(ctx context.Context) error {
	return c.river.Stop(ctx)
}

// InsertIngestJob durably enqueues a single document ingestion run,
// returning once it is persisted, not once it has been processed.
func (c *Client) InsertIngestJob(ctx context.Context, args ImportJobArgs) (*rivertype.JobInsertResult, error) {
	return c.river.Insert(ctx, args, &river.InsertOpts{Queue: DefaultQueue})
}
