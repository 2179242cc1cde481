package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fayano/models"

	"go.uber.org/zap"
)

// ErrSubmissionRejected is returned when the sink answers with a non-2xx status.
var ErrSubmissionRejected = errors.New("submission rejected")

// SubmissionSink receives confirmed bookings. Its own processing is opaque.
type SubmissionSink interface {
	Submit(ctx context.Context, sub models.Submission) error
}

// FormSink posts submissions as JSON to a hosted forms endpoint.
type FormSink struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewFormSink(endpoint string, timeout time.Duration, logger *zap.Logger) *FormSink {
	return &FormSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (f *FormSink) Submit(ctx context.Context, sub models.Submission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach submission endpoint: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("Submission endpoint returned non-OK status", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", ErrSubmissionRejected, resp.StatusCode)
	}
	return nil
}
