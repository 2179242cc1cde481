package loyalty

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTracker_CreditAndSummary(t *testing.T) {
	_, client := setupTestRedis(t)
	tracker := NewTracker(NewRedisStore(client), zap.NewNop())
	ctx := context.Background()

	summary, err := tracker.Summary(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, 10, summary.Remaining)
	assert.Equal(t, "Collect 10 stamps for a Free Service", summary.Headline)

	n, err := tracker.Credit(ctx, "client-a", "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = tracker.Credit(ctx, "client-a", "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "same booking must not stamp twice")

	other, err := tracker.ReadCount(ctx, "client-b")
	require.NoError(t, err)
	assert.Equal(t, 0, other)

	summary, err = tracker.Summary(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stamps)
	assert.Equal(t, []bool{true, false, false, false, false, false, false, false, false, false}, summary.Grid)
}

func TestTracker_SummaryAfterFullCard(t *testing.T) {
	mr, client := setupTestRedis(t)
	tracker := NewTracker(NewRedisStore(client), zap.NewNop())

	require.NoError(t, mr.Set(countKey("client-a"), "21"))
	summary, err := tracker.Summary(context.Background(), "client-a")
	require.NoError(t, err)

	assert.Equal(t, 21, summary.Count)
	assert.Equal(t, 1, summary.Stamps)
	assert.Equal(t, 2, summary.FreeServicesEarned)
	assert.Equal(t, 9, summary.Remaining)
	assert.Equal(t, "You've earned 2 Free Services!", summary.Headline)
	assert.Equal(t, "9 more bookings until your next reward.", summary.Progress)
}
