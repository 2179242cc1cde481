package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"fayano/models"
	"fayano/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleVisitReminder(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := handleVisitReminder(zap.New(core))

	task, _, err := tasks.NewVisitReminderTask(models.ReminderPayload{
		SessionID:   "s1",
		ContactName: "Jane",
		Service:     models.CategoryElectrical,
	}, time.Now())
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	entries := logs.FilterMessage("Visit reminder due").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].ContextMap()["sessionID"])
	assert.Equal(t, "Electrical", entries[0].ContextMap()["service"])
}

func TestHandleVisitReminder_BadPayload(t *testing.T) {
	handler := handleVisitReminder(zap.NewNop())
	err := handler(context.Background(), asynq.NewTask(tasks.TypeVisitReminder, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
