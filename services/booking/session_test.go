package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fayano/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisSessionStore_Lifecycle(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, 30*time.Minute)
	ctx := context.Background()

	state := models.NewWizardState("s1", "c1", models.BookingDetails{})
	require.NoError(t, store.Create(ctx, state))
	assert.Error(t, store.Create(ctx, state), "duplicate session id")
	assert.Equal(t, 30*time.Minute, mr.TTL("booking:session:s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryGeneral, got.Details.Service)
	assert.Equal(t, "c1", got.ClientID)

	updated, err := store.Update(ctx, "s1", func(s models.WizardState) (models.WizardState, error) {
		s.Details.Description = "leaking pipe"
		return s, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "leaking pipe", updated.Details.Description)

	boom := errors.New("boom")
	_, err = store.Update(ctx, "s1", func(s models.WizardState) (models.WizardState, error) {
		s.Details.Description = "discarded"
		return s, boom
	})
	assert.ErrorIs(t, err, boom)
	got, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "leaking pipe", got.Details.Description)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "s1"), ErrSessionNotFound)
	_, err = store.Update(ctx, "s1", func(s models.WizardState) (models.WizardState, error) { return s, nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, models.NewWizardState("s1", "c1", models.BookingDetails{})))

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "s1", func(s models.WizardState) (models.WizardState, error) {
				s.LoyaltyCount++
				return s, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, writers, got.LoyaltyCount)
}

func TestRedisSessionStore_SingleConfirmWins(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, time.Minute)
	ctx := context.Background()

	s := paymentState(t)
	s = apply(t, s, SelectManualPayment{On: true}, EditTransactionCode{Code: "ABC123"})
	require.NoError(t, store.Create(ctx, s))

	const attempts = 6
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, s.SessionID, func(st models.WizardState) (models.WizardState, error) {
				return Apply(st, ConfirmPayment{})
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrPaymentInProgress)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}
