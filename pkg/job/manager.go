package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/mailtemplated/pkg/logger"
	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

const (
	defaultMaxWorkers = 100
	defaultQueue      = river.QueueDefault
)

// Manager sends enqueued messages using River workers.
// Manager embeds Enqueuer for enqueueing methods.
type Manager struct {
	*Enqueuer
	client *river.Client[pgx.Tx]
	logger *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewManager creates a job manager delivering through sender.
// The River client is created immediately, allowing messages to be enqueued
// before Start() is called. Call Start() to begin processing jobs.
func NewManager(pool *pgxpool.Pool, sender mailer.Sender, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}
	if sender == nil {
		return nil, ErrSenderRequired
	}

	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}
	if cfg.maxWorkers == 0 {
		cfg.maxWorkers = defaultMaxWorkers
	}

	queues := map[string]river.QueueConfig{
		defaultQueue: {MaxWorkers: cfg.maxWorkers},
	}
	for name, workers := range cfg.queues {
		queues[name] = river.QueueConfig{MaxWorkers: workers}
	}

	var periodicJobs []*river.PeriodicJob
	for _, p := range cfg.periodics {
		schedule, err := parseCronSchedule(p.schedule)
		if err != nil {
			return nil, fmt.Errorf("job: invalid cron schedule %q: %w", p.schedule, err)
		}

		name := p.name
		periodicJobs = append(periodicJobs, river.NewPeriodicJob(
			schedule,
			func() (river.JobArgs, *river.InsertOpts) {
				return periodicArgs{Name: name}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: false},
		))
	}

	deps := delivery{provider: cfg.provider, sender: sender, logger: cfg.logger}

	workers := river.NewWorkers()
	river.AddWorker(workers, &sendWorker{delivery: deps})
	river.AddWorker(workers, &periodicWorker{
		delivery: deps,
		builders: cfg.builders,
		limit:    cfg.massLimit,
	})

	// Client created immediately, allowing Enqueue() before Start().
	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       queues,
		Workers:      workers,
		PeriodicJobs: periodicJobs,
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{
		Enqueuer: &Enqueuer{
			pool:   pool,
			client: client,
			logger: cfg.logger,
		},
		client: client,
		logger: cfg.logger,
	}, nil
}

// Start begins processing jobs.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}

	m.started = true
	m.logger.Info("mail job manager started")
	return nil
}

// Stop gracefully shuts down the manager.
// It waits for messages being sent to complete.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}

	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}

	m.started = false
	m.logger.Info("mail job manager stopped")
	return nil
}

// Shutdown returns a shutdown function for the manager.
func (m *Manager) Shutdown() func(context.Context) error {
	return m.Stop
}

// StartFunc returns a startup function for the manager.
func (m *Manager) StartFunc() func(context.Context) error {
	return m.Start
}

type cronScheduleAdapter struct {
	schedule cron.Schedule
}

func (a *cronScheduleAdapter) Next(current time.Time) time.Time {
	return a.schedule.Next(current)
}

func parseCronSchedule(expr string) (river.PeriodicSchedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &cronScheduleAdapter{schedule: schedule}, nil
}
