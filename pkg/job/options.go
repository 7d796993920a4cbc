package job

import (
	"log/slog"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// config holds job manager configuration.
type config struct {
	provider   mailer.TemplateProvider
	logger     *slog.Logger
	queues     map[string]int
	builders   map[string]PeriodicFunc
	periodics  []periodicConfig
	maxWorkers int
	massLimit  int
}

// newConfig creates a config with defaults.
func newConfig() *config {
	return &config{
		queues:   make(map[string]int),
		builders: make(map[string]PeriodicFunc),
	}
}

// periodicConfig holds a cron schedule for a periodic builder.
type periodicConfig struct {
	name     string
	schedule string
}

// Option configures the job manager.
type Option func(*config)

// WithProvider sets the template provider bound to restored messages.
// Messages enqueued before rendering need it.
func WithProvider(p mailer.TemplateProvider) Option {
	return func(c *config) {
		c.provider = p
	}
}

// WithPeriodic sends the messages built by fn on a cron schedule
// (5 fields: min hour day month weekday). Messages are bound to the
// manager's sender and provider.
//
// Example:
//
//	job.WithPeriodic("weekly_digest", "0 9 * * 1", digests.Build)
func WithPeriodic(name, schedule string, fn PeriodicFunc) Option {
	return func(c *config) {
		if fn == nil {
			return
		}
		c.builders[name] = fn
		c.periodics = append(c.periodics, periodicConfig{name: name, schedule: schedule})
	}
}

// WithQueue configures a named queue with the specified number of workers.
// If not specified, messages use the default queue with default worker count.
//
// Example:
//
//	job.WithQueue("mail", 10)
//	job.WithQueue("newsletter", 2)
func WithQueue(name string, workers int) Option {
	return func(c *config) {
		if workers > 0 {
			c.queues[name] = workers
		}
	}
}

// WithLogger sets the logger for job processing and restored messages.
// If not set, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers sets the worker count of the default queue.
// Defaults to 100 if not set.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithMassLimit sets how many messages of one periodic run are sent at once.
func WithMassLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.massLimit = n
		}
	}
}
