// Package job delivers templated messages in the background using River
// (Postgres-native queue).
//
// A message is serialized into the job arguments when it is enqueued. The
// worker restores it, binds the template provider and sender configured on
// the Manager, renders it if needed and sends it. Failed sends are retried by
// River with exponential backoff; a payload that cannot be decoded is
// cancelled instead.
//
// # Enqueue only
//
// Web processes usually only enqueue:
//
//	enq, err := job.NewEnqueuer(pool, job.WithEnqueuerLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	msg, _ := mailtemplated.New("welcome.md", map[string]any{"name": name},
//	    mailtemplated.WithTo(email),
//	)
//	err = enq.Enqueue(ctx, msg, job.InQueue("mail"), job.MaxAttempts(5))
//
// EnqueueTx inserts the job inside a transaction, so the email only goes out
// if the surrounding changes are committed.
//
// # Workers
//
//	m, err := job.NewManager(pool, sender,
//	    job.WithProvider(renderer),
//	    job.WithQueue("mail", 10),
//	    job.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := m.Start(ctx); err != nil {
//	    return err
//	}
//	defer m.Stop(context.Background())
//
// # Periodic mail
//
// WithPeriodic builds and sends messages on a cron schedule, e.g. a weekly
// digest:
//
//	job.WithPeriodic("weekly_digest", "0 9 * * 1", func(ctx context.Context) ([]*mailtemplated.Message, error) {
//	    return buildDigests(ctx, repo)
//	})
//
// River tables must exist before use; run River's migrations with the
// river CLI or rivermigrate.
package job
