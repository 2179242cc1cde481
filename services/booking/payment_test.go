package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fayano/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFormSink_SubmitPostsBookingJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	state := models.NewWizardState("s1", "c1", models.BookingDetails{
		Service:      models.CategoryPlumbing,
		Description:  "leaking pipe",
		Date:         "2025-06-01",
		Time:         "09:00 AM",
		Address:      "Kilimani",
		ContactName:  "Jane",
		ContactPhone: "0712345678",
		ContactEmail: "jane@x.com",
	})
	state.PaymentPhone = "0712345678"
	state.TransactionCode = "ABC123"
	at := time.Date(2025, 6, 1, 6, 30, 0, 0, time.UTC)

	sink := NewFormSink(srv.URL, time.Second, zap.NewNop())
	require.NoError(t, sink.Submit(context.Background(), models.NewSubmission(state, at)))

	assert.Equal(t, "Plumbing", got["service"])
	assert.Equal(t, "leaking pipe", got["description"])
	assert.Equal(t, "jane@x.com", got["contactEmail"])
	assert.Equal(t, "jane@x.com", got["email"])
	assert.Equal(t, "VERIFYING", got["paymentStatus"])
	assert.Equal(t, "ABC123", got["mpesaTransactionCode"])
	assert.Equal(t, "M-Pesa", got["paymentMethod"])
	assert.Equal(t, "0712345678", got["mpesaNumber"])
	assert.Equal(t, "2025-06-01T06:30:00.000Z", got["timestamp"])
	assert.EqualValues(t, 200, got["amountPaid"])
}

func TestFormSink_SubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	sink := NewFormSink(srv.URL, time.Second, zap.NewNop())
	err := sink.Submit(context.Background(), models.Submission{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmissionRejected))
}

func TestFormSink_SubmitUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sink := NewFormSink(url, time.Second, zap.NewNop())
	err := sink.Submit(context.Background(), models.Submission{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSubmissionRejected))
}
