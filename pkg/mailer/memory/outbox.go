// Package memory provides an in-process outbox for tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// Outbox implements mailer.Sender by keeping copies of sent emails.
// It is safe for concurrent use.
type Outbox struct {
	mu       sync.RWMutex
	messages []*mailer.Email
	err      error
}

// New creates an empty outbox.
func New() *Outbox {
	return &Outbox{}
}

// Send implements mailer.Sender.
func (o *Outbox) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := email.Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.err != nil {
		return o.err
	}
	o.messages = append(o.messages, email.Clone())
	return nil
}

// FailWith makes every following Send return err. Nil restores delivery.
func (o *Outbox) FailWith(err error) {
	o.mu.Lock()
	o.err = err
	o.mu.Unlock()
}

// Messages returns copies of the emails sent so far, oldest first.
func (o *Outbox) Messages() []*mailer.Email {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]*mailer.Email, len(o.messages))
	for i, m := range o.messages {
		out[i] = m.Clone()
	}
	return out
}

// Len returns the number of emails sent so far.
func (o *Outbox) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.messages)
}

// Reset empties the outbox.
func (o *Outbox) Reset() {
	o.mu.Lock()
	o.messages = nil
	o.mu.Unlock()
}
