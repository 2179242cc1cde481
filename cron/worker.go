package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fayano/config"
	"fayano/models"
	"fayano/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the reminder queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the reminder worker in the background. The returned
// server must be shut down by the caller.
func InitReminderWorker(logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeVisitReminder, handleVisitReminder(logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("Reminder worker giving up")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// handleVisitReminder logs the due reminder. Delivery to the customer is
// handled outside this service.
func handleVisitReminder(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		logger.Info("Visit reminder due",
			zap.String("sessionID", p.SessionID),
			zap.String("contactName", p.ContactName),
			zap.String("contactPhone", p.ContactPhone),
			zap.String("service", string(p.Service)),
			zap.String("address", p.Address),
			zap.String("visitAt", p.VisitAt),
		)
		return nil
	}
}
