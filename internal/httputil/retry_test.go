// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sitescope/pkg/types"
)

func init() {
	RetryBaseDelay = 1 * time.Millisecond
}

// throttling answers status for the first n calls, then 200.
func throttling(status int, n int32, calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(calls, 1) <= n {
			w.WriteHeader(status)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestDoWithRetry(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		failures   int32
		maxRetries int
		wantStatus int
		wantCalls  int32
	}{
		{name: "immediate success", status: http.StatusTooManyRequests, failures: 0, maxRetries: 5, wantStatus: 200, wantCalls: 1},
		{name: "429 then success", status: http.StatusTooManyRequests, failures: 2, maxRetries: 5, wantStatus: 200, wantCalls: 3},
		{name: "503 then success", status: http.StatusServiceUnavailable, failures: 1, maxRetries: 5, wantStatus: 200, wantCalls: 2},
		{name: "exhausts retries", status: http.StatusTooManyRequests, failures: 100, maxRetries: 3, wantStatus: 429, wantCalls: 4},
		{name: "default retries", status: http.StatusTooManyRequests, failures: 100, maxRetries: 0, wantStatus: 429, wantCalls: 6},
		{name: "500 not retried", status: http.StatusInternalServerError, failures: 100, maxRetries: 5, wantStatus: 500, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := throttling(tt.status, tt.failures, &calls)
			defer ts.Close()

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)

			resp, err := DoWithRetry(context.Background(), ts.Client(), req, tt.maxRetries)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBackoff(t *testing.T) {
	old := RetryBaseDelay
	RetryBaseDelay = time.Second
	defer func() { RetryBaseDelay = old }()

	assert.Equal(t, time.Second, backoff(0, ""))
	assert.Equal(t, 4*time.Second, backoff(2, ""))
	assert.Equal(t, 7*time.Second, backoff(0, "7"))
	assert.Equal(t, MaxRetryAfter, backoff(0, "100000"))
	assert.Equal(t, 2*time.Second, backoff(1, "Wed, 21 Oct 2015 07:28:00 GMT"))
}

func TestGetSetsUserAgent(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cfg := types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "sitescope-test"}
	resp, err := Get(context.Background(), NewClient(cfg), ts.URL, cfg, 1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "sitescope-test", ua)
}
