package job

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtemplated"
)

func TestInQueue(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{}
	InQueue("mail")(cfg)
	assert.Equal(t, "mail", cfg.queue)
}

func TestInQueue_Empty(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{queue: "existing"}
	InQueue("")(cfg)
	assert.Equal(t, "existing", cfg.queue)
}

func TestScheduledAt(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{}
	future := time.Now().Add(24 * time.Hour)
	ScheduledAt(future)(cfg)

	require.NotNil(t, cfg.scheduledAt)
	assert.Equal(t, future, *cfg.scheduledAt)
}

func TestScheduledIn(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{}
	before := time.Now()
	ScheduledIn(time.Hour)(cfg)
	after := time.Now()

	require.NotNil(t, cfg.scheduledAt)
	assert.False(t, cfg.scheduledAt.Before(before.Add(time.Hour)))
	assert.False(t, cfg.scheduledAt.After(after.Add(time.Hour)))
}

func TestMaxAttempts_IgnoresNonPositive(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{}
	MaxAttempts(0)(cfg)
	assert.Zero(t, cfg.maxAttempts)

	MaxAttempts(3)(cfg)
	assert.Equal(t, 3, cfg.maxAttempts)
}

func TestTags_Append(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{}
	Tags("a")(cfg)
	Tags("b", "c")(cfg)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.tags)
}

func TestBuildJobArgs_NilMessage(t *testing.T) {
	t.Parallel()

	_, _, err := buildJobArgs(nil)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestBuildJobArgs(t *testing.T) {
	t.Parallel()

	msg, err := mailtemplated.New("welcome.txt", map[string]any{"name": "Ann"},
		mailtemplated.WithTo("ann@example.com"),
	)
	require.NoError(t, err)

	at := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
	args, opts, err := buildJobArgs(msg,
		InQueue("mail"),
		ScheduledAt(at),
		MaxAttempts(5),
		Priority(2),
		Tags("welcome"),
		UniqueFor(time.Hour),
	)
	require.NoError(t, err)

	assert.Equal(t, msg.ID, args.MessageID)
	assert.Equal(t, "mailtemplated:send", args.Kind())

	var state map[string]any
	require.NoError(t, json.Unmarshal(args.Message, &state))
	assert.Equal(t, "welcome.txt", state["template_name"])

	assert.Equal(t, "mail", opts.Queue)
	assert.Equal(t, at, opts.ScheduledAt)
	assert.Equal(t, 5, opts.MaxAttempts)
	assert.Equal(t, 2, opts.Priority)
	assert.Equal(t, []string{"welcome"}, opts.Tags)
	assert.True(t, opts.UniqueOpts.ByArgs)
	assert.Equal(t, time.Hour, opts.UniqueOpts.ByPeriod)
}

func TestBuildJobArgs_Defaults(t *testing.T) {
	t.Parallel()

	msg, err := mailtemplated.New("welcome.txt", nil)
	require.NoError(t, err)

	_, opts, err := buildJobArgs(msg)
	require.NoError(t, err)

	assert.Empty(t, opts.Queue)
	assert.True(t, opts.ScheduledAt.IsZero())
	assert.Zero(t, opts.MaxAttempts)
	assert.False(t, opts.UniqueOpts.ByArgs)
	assert.Zero(t, opts.UniqueOpts.ByPeriod)
}
