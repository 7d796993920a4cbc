package job

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/riverqueue/river"

	"github.com/dmitrymomot/mailtemplated"
)

// enqueueConfig holds options for enqueueing a message.
type enqueueConfig struct {
	scheduledAt *time.Time
	queue       string
	tags        []string
	maxAttempts int
	uniqueFor   time.Duration
	priority    int
}

// EnqueueOption configures job enqueueing.
type EnqueueOption func(*enqueueConfig)

// InQueue specifies which queue to use for the job.
// If not specified, the default queue is used.
//
// Example:
//
//	enq.Enqueue(ctx, msg, job.InQueue("mail"))
func InQueue(name string) EnqueueOption {
	return func(c *enqueueConfig) {
		if name != "" {
			c.queue = name
		}
	}
}

// ScheduledAt delays delivery until t.
//
// Example:
//
//	enq.Enqueue(ctx, reminder, job.ScheduledAt(event.StartsAt.Add(-time.Hour)))
func ScheduledAt(t time.Time) EnqueueOption {
	return func(c *enqueueConfig) {
		c.scheduledAt = &t
	}
}

// ScheduledIn delays delivery by d.
//
// Example:
//
//	enq.Enqueue(ctx, followUp, job.ScheduledIn(72*time.Hour))
func ScheduledIn(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		t := time.Now().Add(d)
		c.scheduledAt = &t
	}
}

// MaxAttempts sets the maximum number of delivery attempts.
// Defaults to River's default (25 attempts).
func MaxAttempts(n int) EnqueueOption {
	return func(c *enqueueConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// UniqueFor skips enqueueing the same message (by Message.ID) twice within d.
//
// Example:
//
//	// Retrying a request does not send the receipt twice.
//	enq.Enqueue(ctx, receipt, job.UniqueFor(time.Hour))
func UniqueFor(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		c.uniqueFor = d
	}
}

// Priority sets the job priority (lower numbers = higher priority).
// Defaults to 1 if not set.
//
// Example:
//
//	enq.Enqueue(ctx, passwordReset, job.Priority(0))
//	enq.Enqueue(ctx, newsletter, job.Priority(4))
func Priority(p int) EnqueueOption {
	return func(c *enqueueConfig) {
		c.priority = p
	}
}

// Tags adds metadata tags to the job.
func Tags(tags ...string) EnqueueOption {
	return func(c *enqueueConfig) {
		c.tags = append(c.tags, tags...)
	}
}

// buildJobArgs serializes a message into job arguments.
func buildJobArgs(msg *mailtemplated.Message, opts ...EnqueueOption) (*SendArgs, *river.InsertOpts, error) {
	if msg == nil {
		return nil, nil, errors.Join(ErrInvalidPayload, errors.New("nil message"))
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, errors.Join(ErrInvalidPayload, err)
	}

	args := &SendArgs{
		MessageID: msg.ID,
		Message:   payload,
	}

	enqCfg := &enqueueConfig{}
	for _, opt := range opts {
		opt(enqCfg)
	}

	insertOpts := &river.InsertOpts{}
	if enqCfg.queue != "" {
		insertOpts.Queue = enqCfg.queue
	}
	if enqCfg.scheduledAt != nil {
		insertOpts.ScheduledAt = *enqCfg.scheduledAt
	}
	if enqCfg.maxAttempts > 0 {
		insertOpts.MaxAttempts = enqCfg.maxAttempts
	}
	if enqCfg.priority > 0 {
		insertOpts.Priority = enqCfg.priority
	}
	if len(enqCfg.tags) > 0 {
		insertOpts.Tags = enqCfg.tags
	}
	if enqCfg.uniqueFor > 0 {
		insertOpts.UniqueOpts = river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: enqCfg.uniqueFor,
		}
	}

	return args, insertOpts, nil
}
