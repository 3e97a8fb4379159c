package scheduler_test

import (
	"testing"

	"securities/src/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduledTaskRejectsInvalidSpec(t *testing.T) {
	_, err := scheduler.NewScheduledTask("not a cron spec", func() {})
	assert.Error(t, err)
}

func TestScheduledTaskCancel(t *testing.T) {
	task, err := scheduler.NewScheduledTask("@every 1h", func() {})
	require.NoError(t, err)
	task.Cancel()
}
