package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMapLink(t *testing.T) {
	link, err := MapLink(-1.2921, 36.8219)
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/maps?q=-1.2921,36.8219", link)

	_, err = MapLink(91, 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
	_, err = MapLink(0, -181)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestIPLocator_Locate(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/json/41.90.1.1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","lat":-1.28,"lon":36.82}`))
	}))
	defer srv.Close()

	l := NewIPLocator(srv.URL+"/json/%s", time.Second, zap.NewNop())

	c, err := l.Locate(context.Background(), "41.90.1.1")
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Latitude: -1.28, Longitude: 36.82}, c)

	_, err = l.Locate(context.Background(), "41.90.1.1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second lookup is served from cache")
}

func TestIPLocator_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
	}))
	defer srv.Close()

	l := NewIPLocator(srv.URL+"/%s", time.Second, zap.NewNop())

	for _, ip := range []string{"", "127.0.0.1", "192.168.1.20", "10.0.0.4", "not-an-ip", "41.90.1.1"} {
		_, err := l.Locate(context.Background(), ip)
		assert.True(t, errors.Is(err, ErrLocationUnavailable), "ip %q", ip)
	}
}
