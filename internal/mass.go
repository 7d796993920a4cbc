package internal

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultMassLimit is the number of messages SendMass sends at once
// when limit is not positive.
const DefaultMassLimit = 8

// SendMass sends distinct messages concurrently, at most limit at a time.
// It returns the number of messages handed off and the first error.
// Messages still queued when an error occurs are not sent.
func SendMass(ctx context.Context, limit int, msgs ...*Message) (int, error) {
	if limit <= 0 {
		limit = DefaultMassLimit
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var sent atomic.Int64
	for _, m := range msgs {
		if m == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := m.Send(ctx)
			if err != nil {
				return err
			}
			sent.Add(int64(n))
			return nil
		})
	}

	err := g.Wait()
	return int(sent.Load()), err
}
