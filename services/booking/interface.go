package booking

import (
	"context"
	"time"

	"fayano/models"
	"fayano/services/location"
)

// LoyaltyCrediter stamps a client's loyalty card once per completed booking.
type LoyaltyCrediter interface {
	Credit(ctx context.Context, clientID, sessionID string) (int, error)
	ReadCount(ctx context.Context, clientID string) (int, error)
}

// RecordRepository keeps durable copies of accepted bookings.
type RecordRepository interface {
	Create(ctx context.Context, rec *models.BookingRecord) error
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	ListByClient(ctx context.Context, clientID string, limit int64) ([]models.BookingRecord, error)
}

// ReminderScheduler enqueues a reminder ahead of the booked visit.
type ReminderScheduler interface {
	ScheduleVisitReminder(ctx context.Context, payload models.ReminderPayload, visitAt time.Time) error
}

// Locator resolves an approximate position for a client IP.
type Locator interface {
	Locate(ctx context.Context, ip string) (location.Coordinates, error)
}

// AIContextStore holds the client's latest classification. Get returns nil
// when there is none.
type AIContextStore interface {
	Get(ctx context.Context, clientID string) (*models.AIContext, error)
	Clear(ctx context.Context, clientID string) error
}

// Timing holds the simulated payment latencies.
type Timing struct {
	PromptLatency     time.Duration
	VerificationDelay time.Duration
	CompletionDelay   time.Duration
}
