package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	up := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer up.Close()
	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer down.Close()

	status := CheckHealth(context.Background(), []*redis.Client{up}, nil)
	assert.Equal(t, []bool{true}, status.Redis)
	assert.Nil(t, status.Mongo)
	assert.True(t, status.Healthy())

	status = CheckHealth(context.Background(), []*redis.Client{up, down}, nil)
	assert.Equal(t, []bool{true, false}, status.Redis)
	assert.False(t, status.Healthy())
	assert.Equal(t, status, GetHealthStatus())
}
