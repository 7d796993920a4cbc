package job

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck_NilManager(t *testing.T) {
	t.Parallel()

	err := Healthcheck(nil)(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHealthcheckFailed)
	assert.ErrorIs(t, err, errManagerNil)
}

func TestHealthcheck_NotStarted(t *testing.T) {
	t.Parallel()

	err := Healthcheck(&Manager{})(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHealthcheckFailed)
	assert.ErrorIs(t, err, errManagerNotStarted)
}
