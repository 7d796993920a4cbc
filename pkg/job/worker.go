package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/dmitrymomot/mailtemplated"
	"github.com/dmitrymomot/mailtemplated/pkg/logger"
	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// delivery holds the collaborators bound to restored messages.
type delivery struct {
	provider mailer.TemplateProvider
	sender   mailer.Sender
	logger   *slog.Logger
}

// sendWorker restores and sends enqueued messages.
type sendWorker struct {
	river.WorkerDefaults[SendArgs]
	delivery
}

func (w *sendWorker) Work(ctx context.Context, job *river.Job[SendArgs]) error {
	ctx = logger.WithMessageID(ctx, job.Args.MessageID)

	msg, err := mailtemplated.Restore(job.Args.Message,
		mailtemplated.WithProvider(w.provider),
		mailtemplated.WithSender(w.sender),
		mailtemplated.WithLogger(w.logger),
	)
	if err != nil {
		w.logger.ErrorContext(ctx, "cannot restore message, job cancelled",
			slog.Int64("job_id", job.ID),
			slog.Any("error", err),
		)
		// Retrying cannot fix a corrupt payload.
		return river.JobCancel(errors.Join(ErrInvalidPayload, err))
	}

	n, err := msg.Send(ctx, mailtemplated.AndClean())
	if err != nil {
		w.logger.ErrorContext(ctx, "message delivery failed",
			slog.Int64("job_id", job.ID),
			slog.Int("attempt", job.Attempt),
			slog.Any("error", err),
		)
		return err
	}

	w.logger.DebugContext(ctx, "message delivered",
		slog.Int64("job_id", job.ID),
		slog.Int("sent", n),
	)
	return nil
}

// PeriodicFunc builds the messages of one periodic run.
type PeriodicFunc func(ctx context.Context) ([]*mailtemplated.Message, error)

// periodicWorker runs registered PeriodicFuncs and sends their messages.
type periodicWorker struct {
	river.WorkerDefaults[periodicArgs]
	delivery
	builders map[string]PeriodicFunc
	limit    int
}

func (w *periodicWorker) Work(ctx context.Context, job *river.Job[periodicArgs]) error {
	build, ok := w.builders[job.Args.Name]
	if !ok {
		return river.JobCancel(fmt.Errorf("%w: %s", ErrUnknownPeriodic, job.Args.Name))
	}

	msgs, err := build(ctx)
	if err != nil {
		return fmt.Errorf("job: periodic %s: %w", job.Args.Name, err)
	}

	for _, msg := range msgs {
		if msg == nil {
			continue
		}
		msg.SetSender(w.sender)
		if w.provider != nil {
			msg.SetProvider(w.provider)
		}
		msg.SetLogger(w.logger)
	}

	sent, err := mailtemplated.SendMass(ctx, w.limit, msgs...)
	w.logger.InfoContext(ctx, "periodic mail sent",
		slog.String("periodic", job.Args.Name),
		slog.Int("messages", len(msgs)),
		slog.Int("sent", sent),
	)
	return err
}
