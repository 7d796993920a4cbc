package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"

	"github.com/dmitrymomot/mailtemplated"
	"github.com/dmitrymomot/mailtemplated/pkg/logger"
)

// inserter is the part of the River client used for enqueueing.
type inserter interface {
	Insert(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
	InsertTx(ctx context.Context, tx pgx.Tx, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
}

// Enqueuer provides message enqueueing without worker processing.
// Use this for applications that only dispatch messages to be sent by
// separate worker processes.
type Enqueuer struct {
	pool   *pgxpool.Pool
	client inserter
	logger *slog.Logger
}

// EnqueuerOption configures the enqueuer.
type EnqueuerOption func(*enqueuerConfig)

type enqueuerConfig struct {
	logger *slog.Logger
}

// WithEnqueuerLogger sets the logger for the enqueuer.
func WithEnqueuerLogger(l *slog.Logger) EnqueuerOption {
	return func(c *enqueuerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewEnqueuer creates a new enqueue-only client.
// The River client is created in insert-only mode (no workers).
func NewEnqueuer(pool *pgxpool.Pool, opts ...EnqueuerOption) (*Enqueuer, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := &enqueuerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}

	// Insert-only: no Workers, no Queues.
	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create enqueuer client: %w", err)
	}

	return &Enqueuer{
		pool:   pool,
		client: client,
		logger: cfg.logger,
	}, nil
}

// Enqueue schedules msg for delivery by a worker.
// The message is serialized as it is now: later changes to msg are not sent.
func (e *Enqueuer) Enqueue(ctx context.Context, msg *mailtemplated.Message, opts ...EnqueueOption) error {
	args, insertOpts, err := buildJobArgs(msg, opts...)
	if err != nil {
		return err
	}

	res, err := e.client.Insert(ctx, args, insertOpts)
	if err != nil {
		return fmt.Errorf("job: enqueue: %w", err)
	}

	e.logInserted(ctx, args, res)
	return nil
}

// EnqueueTx schedules msg within a transaction.
// The job is only visible after the transaction commits.
func (e *Enqueuer) EnqueueTx(ctx context.Context, tx pgx.Tx, msg *mailtemplated.Message, opts ...EnqueueOption) error {
	args, insertOpts, err := buildJobArgs(msg, opts...)
	if err != nil {
		return err
	}

	res, err := e.client.InsertTx(ctx, tx, args, insertOpts)
	if err != nil {
		return fmt.Errorf("job: enqueue tx: %w", err)
	}

	e.logInserted(ctx, args, res)
	return nil
}

func (e *Enqueuer) logInserted(ctx context.Context, args *SendArgs, res *rivertype.JobInsertResult) {
	ctx = logger.WithMessageID(ctx, args.MessageID)
	if res != nil && res.UniqueSkippedAsDuplicate {
		e.logger.DebugContext(ctx, "message already enqueued, skipped")
		return
	}
	e.logger.DebugContext(ctx, "message enqueued")
}
