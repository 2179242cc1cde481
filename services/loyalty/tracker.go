package loyalty

import (
	"context"
	"fmt"

	"fayano/models"

	"go.uber.org/zap"
)

const (
	countKeyPrefix  = "fayano_loyalty_count:"
	creditKeyPrefix = "fayano_loyalty_credit:"
)

// Tracker scopes the counter store to one browser identity.
type Tracker struct {
	store  Store
	logger *zap.Logger
}

func NewTracker(store Store, logger *zap.Logger) *Tracker {
	return &Tracker{store: store, logger: logger}
}

func countKey(clientID string) string {
	return countKeyPrefix + clientID
}

func (t *Tracker) ReadCount(ctx context.Context, clientID string) (int, error) {
	return t.store.ReadCount(ctx, countKey(clientID))
}

func (t *Tracker) Increment(ctx context.Context, clientID string) (int, error) {
	return t.store.Increment(ctx, countKey(clientID))
}

// Credit stamps the card for a completed booking. Repeated credits for the
// same booking session leave the count unchanged.
func (t *Tracker) Credit(ctx context.Context, clientID, sessionID string) (int, error) {
	n, applied, err := t.store.IncrementOnce(ctx, countKey(clientID), creditKeyPrefix+sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to credit loyalty stamp: %w", err)
	}
	if !applied {
		t.logger.Info("Loyalty stamp already credited",
			zap.String("clientID", clientID),
			zap.String("sessionID", sessionID),
		)
	}
	return n, nil
}

// Summary renders the stamp card for clientID.
func (t *Tracker) Summary(ctx context.Context, clientID string) (models.LoyaltySummary, error) {
	n, err := t.ReadCount(ctx, clientID)
	if err != nil {
		return models.LoyaltySummary{}, err
	}
	return models.NewLoyaltySummary(n), nil
}
