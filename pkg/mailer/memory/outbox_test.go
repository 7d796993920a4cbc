package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

func TestOutbox(t *testing.T) {
	t.Parallel()

	o := New()
	email := &mailer.Email{Subject: "Hi", To: []string{"ann@example.com"}}

	require.NoError(t, o.Send(context.Background(), email))
	email.Subject = "Changed after send"

	got := o.Messages()
	require.Len(t, got, 1)
	require.Equal(t, "Hi", got[0].Subject)

	got[0].Subject = "Changed copy"
	require.Equal(t, "Hi", o.Messages()[0].Subject)

	o.Reset()
	require.Zero(t, o.Len())
}

func TestOutbox_Errors(t *testing.T) {
	t.Parallel()

	o := New()
	require.ErrorIs(t, o.Send(context.Background(), &mailer.Email{}), mailer.ErrNoRecipient)

	boom := errors.New("boom")
	o.FailWith(boom)
	require.ErrorIs(t, o.Send(context.Background(), &mailer.Email{To: []string{"a@x"}}), boom)
	require.Zero(t, o.Len())

	o.FailWith(nil)
	require.NoError(t, o.Send(context.Background(), &mailer.Email{To: []string{"a@x"}}))
	require.Equal(t, 1, o.Len())
}

func TestOutbox_Concurrent(t *testing.T) {
	t.Parallel()

	o := New()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = o.Send(context.Background(), &mailer.Email{To: []string{"a@x"}})
		}()
	}
	wg.Wait()
	require.Equal(t, 50, o.Len())
}
