package tasks

import (
	"encoding/json"
	"testing"
	"time"

	"fayano/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVisitReminderTask(t *testing.T) {
	payload := models.ReminderPayload{
		SessionID:    "s1",
		ClientID:     "c1",
		ContactName:  "Jane",
		ContactPhone: "0712345678",
		Service:      models.CategoryPlumbing,
		Address:      "Kilimani",
		VisitAt:      "2030-06-01T09:00:00+03:00",
	}
	task, opts, err := NewVisitReminderTask(payload, time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, TypeVisitReminder, task.Type())
	assert.Len(t, opts, 3)

	var got models.ReminderPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, payload, got)
}

func TestFireTime(t *testing.T) {
	now := time.Date(2030, 6, 1, 6, 0, 0, 0, time.UTC)

	visit := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, visit.Add(-2*time.Hour), FireTime(visit, 2*time.Hour, now))

	soon := now.Add(30 * time.Minute)
	assert.Equal(t, now, FireTime(soon, 2*time.Hour, now))
}
