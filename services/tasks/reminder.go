package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fayano/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeVisitReminder = "booking:visit_reminder"

// NewVisitReminderTask builds the reminder task and its scheduling options.
// The task ID is derived from the session so a booking is reminded at most once.
func NewVisitReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeVisitReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("visit-reminder:" + payload.SessionID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// FireTime is lead before the visit, or now when that moment has passed.
func FireTime(visitAt time.Time, lead time.Duration, now time.Time) time.Time {
	at := visitAt.Add(-lead)
	if at.Before(now) {
		return now
	}
	return at
}

// AsynqReminderScheduler enqueues visit reminders on the reminder queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
	logger *zap.Logger
}

func NewAsynqReminderScheduler(opt asynq.RedisClientOpt, lead time.Duration, logger *zap.Logger) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(opt),
		lead:   lead,
		logger: logger,
	}
}

func (s *AsynqReminderScheduler) ScheduleVisitReminder(ctx context.Context, payload models.ReminderPayload, visitAt time.Time) error {
	fireAt := FireTime(visitAt, s.lead, time.Now())
	task, opts, err := NewVisitReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}

	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		s.logger.Info("Visit reminder already scheduled", zap.String("sessionID", payload.SessionID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	s.logger.Info("Visit reminder scheduled",
		zap.String("sessionID", payload.SessionID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt),
	)
	return nil
}

func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
