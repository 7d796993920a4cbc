package job

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer/memory"
)

func TestNewManager_NilPool(t *testing.T) {
	t.Parallel()

	_, err := NewManager(nil, memory.New())
	assert.ErrorIs(t, err, ErrPoolRequired)
}

func TestNewManager_NilSender(t *testing.T) {
	t.Parallel()

	_, err := NewManager(&pgxpool.Pool{}, nil)
	assert.ErrorIs(t, err, ErrSenderRequired)
}

func TestNewManager_InvalidSchedule(t *testing.T) {
	t.Parallel()

	_, err := NewManager(&pgxpool.Pool{}, memory.New(),
		WithPeriodic("digest", "every monday", noopPeriodic),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
}

func TestParseCronSchedule_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want time.Time
	}{
		{name: "every minute", expr: "CRON_TZ=UTC * * * * *", want: time.Date(2030, 1, 1, 10, 31, 0, 0, time.UTC)},
		{name: "every hour", expr: "CRON_TZ=UTC 0 * * * *", want: time.Date(2030, 1, 1, 11, 0, 0, 0, time.UTC)},
		{name: "daily at nine", expr: "CRON_TZ=UTC 0 9 * * *", want: time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)},
		{name: "every 15 minutes", expr: "CRON_TZ=UTC */15 * * * *", want: time.Date(2030, 1, 1, 10, 45, 0, 0, time.UTC)},
		{name: "mondays at nine", expr: "CRON_TZ=UTC 0 9 * * 1", want: time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)},
	}

	// Tuesday.
	from := time.Date(2030, 1, 1, 10, 30, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			schedule, err := parseCronSchedule(tt.expr)
			require.NoError(t, err)
			got := schedule.Next(from)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseCronSchedule_Invalid(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{
		"",
		"* * *",
		"* * * * * *",
		"60 * * * *",
		"* 25 * * *",
		"* * 32 * *",
		"* * * 13 *",
		"* * * * 8",
		"not a cron expression",
	} {
		_, err := parseCronSchedule(expr)
		assert.Error(t, err, expr)
	}
}

func TestManager_StopNotStarted(t *testing.T) {
	t.Parallel()

	m := &Manager{}
	assert.ErrorIs(t, m.Stop(context.Background()), ErrNotStarted)
}

func TestManager_StartAlreadyStarted(t *testing.T) {
	t.Parallel()

	m := &Manager{started: true}
	assert.ErrorIs(t, m.Start(context.Background()), ErrAlreadyStarted)
}
