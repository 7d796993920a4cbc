package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtemplated"
	"github.com/dmitrymomot/mailtemplated/pkg/logger"
	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
	"github.com/dmitrymomot/mailtemplated/pkg/mailer/memory"
)

func testRenderer() *mailer.Renderer {
	return mailer.NewRenderer(fstest.MapFS{
		"reminder.txt": &fstest.MapFile{Data: []byte(
			`{{define "subject"}}Reminder for {{.name}}{{end}}
{{define "body"}}Your trial ends tomorrow, {{.name}}.{{end}}`)},
	})
}

func testDelivery(outbox *memory.Outbox) delivery {
	return delivery{
		provider: testRenderer(),
		sender:   outbox,
		logger:   logger.NewNope(),
	}
}

func sendJob(t *testing.T, msg *mailtemplated.Message) *river.Job[SendArgs] {
	t.Helper()

	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	return &river.Job[SendArgs]{
		JobRow: &rivertype.JobRow{ID: 1, Attempt: 1},
		Args:   SendArgs{MessageID: msg.ID, Message: payload},
	}
}

func TestSendWorker_RendersRestoredMessage(t *testing.T) {
	t.Parallel()

	outbox := memory.New()
	w := &sendWorker{delivery: testDelivery(outbox)}

	msg, err := mailtemplated.New("reminder.txt", map[string]any{"name": "Ann"},
		mailtemplated.WithTo("ann@example.com"),
	)
	require.NoError(t, err)

	require.NoError(t, w.Work(context.Background(), sendJob(t, msg)))

	sent := outbox.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Reminder for Ann", sent[0].Subject)
	assert.Equal(t, "Your trial ends tomorrow, Ann.", sent[0].Body)
	assert.Equal(t, []string{"ann@example.com"}, sent[0].To)
}

func TestSendWorker_RenderedMessageIsNotRerendered(t *testing.T) {
	t.Parallel()

	outbox := memory.New()
	w := &sendWorker{delivery: testDelivery(outbox)}

	msg, err := mailtemplated.New("reminder.txt", map[string]any{"name": "Ann"},
		mailtemplated.WithProvider(testRenderer()),
		mailtemplated.WithTo("ann@example.com"),
		mailtemplated.WithClean(),
	)
	require.NoError(t, err)
	msg.Subject = "Edited after render"

	require.NoError(t, w.Work(context.Background(), sendJob(t, msg)))
	assert.Equal(t, "Edited after render", outbox.Messages()[0].Subject)
}

func TestSendWorker_CorruptPayloadCancels(t *testing.T) {
	t.Parallel()

	outbox := memory.New()
	w := &sendWorker{delivery: testDelivery(outbox)}

	job := &river.Job[SendArgs]{
		JobRow: &rivertype.JobRow{ID: 1, Attempt: 1},
		Args:   SendArgs{MessageID: "broken", Message: json.RawMessage(`{"email":`)},
	}

	err := w.Work(context.Background(), job)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Zero(t, outbox.Len())
}

func TestSendWorker_TransportErrorRetries(t *testing.T) {
	t.Parallel()

	outbox := memory.New()
	sendErr := errors.New("smtp: 421 try again later")
	outbox.FailWith(sendErr)
	w := &sendWorker{delivery: testDelivery(outbox)}

	msg, err := mailtemplated.New("reminder.txt", map[string]any{"name": "Ann"},
		mailtemplated.WithTo("ann@example.com"),
	)
	require.NoError(t, err)

	err = w.Work(context.Background(), sendJob(t, msg))
	assert.ErrorIs(t, err, sendErr)
	assert.NotErrorIs(t, err, ErrInvalidPayload)
}

func TestPeriodicWorker_SendsBuiltMessages(t *testing.T) {
	t.Parallel()

	outbox := memory.New()
	w := &periodicWorker{
		delivery: testDelivery(outbox),
		builders: map[string]PeriodicFunc{
			"trial_reminders": func(context.Context) ([]*mailtemplated.Message, error) {
				var msgs []*mailtemplated.Message
				for _, name := range []string{"Ann", "Bob", "Cid"} {
					msg, err := mailtemplated.New("reminder.txt", map[string]any{"name": name},
						mailtemplated.WithTo(name+"@example.com"),
					)
					if err != nil {
						return nil, err
					}
					msgs = append(msgs, msg)
				}
				return append(msgs, nil), nil
			},
		},
	}

	job := &river.Job[periodicArgs]{
		JobRow: &rivertype.JobRow{ID: 7, Attempt: 1},
		Args:   periodicArgs{Name: "trial_reminders"},
	}
	require.NoError(t, w.Work(context.Background(), job))

	sent := outbox.Messages()
	require.Len(t, sent, 3)
	subjects := make([]string, 0, len(sent))
	for _, e := range sent {
		subjects = append(subjects, e.Subject)
	}
	assert.ElementsMatch(t, []string{"Reminder for Ann", "Reminder for Bob", "Reminder for Cid"}, subjects)
}

func TestPeriodicWorker_UnknownName(t *testing.T) {
	t.Parallel()

	w := &periodicWorker{delivery: testDelivery(memory.New())}
	job := &river.Job[periodicArgs]{
		JobRow: &rivertype.JobRow{ID: 1, Attempt: 1},
		Args:   periodicArgs{Name: "missing"},
	}

	err := w.Work(context.Background(), job)
	assert.ErrorIs(t, err, ErrUnknownPeriodic)
}

func TestPeriodicWorker_BuildError(t *testing.T) {
	t.Parallel()

	buildErr := errors.New("query failed")
	outbox := memory.New()
	w := &periodicWorker{
		delivery: testDelivery(outbox),
		builders: map[string]PeriodicFunc{
			"digest": func(context.Context) ([]*mailtemplated.Message, error) {
				return nil, buildErr
			},
		},
	}
	job := &river.Job[periodicArgs]{
		JobRow: &rivertype.JobRow{ID: 1, Attempt: 1},
		Args:   periodicArgs{Name: "digest"},
	}

	err := w.Work(context.Background(), job)
	assert.ErrorIs(t, err, buildErr)
	assert.Zero(t, outbox.Len())
}
