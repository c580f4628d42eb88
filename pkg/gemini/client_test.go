package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockbot-be/internal/pkg/apperror"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", "gemini-2.0-flash", 2*time.Second).WithBaseURL(srv.URL)
}

func TestGenerateReply(t *testing.T) {
	t.Run("returns trimmed first candidate text", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
			assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Tell me about yourself.  "}]}}]}`))
		})

		reply, err := client.GenerateReply(context.Background(), "start the interview")
		require.NoError(t, err)
		assert.Equal(t, "Tell me about yourself.", reply)
	})

	t.Run("empty candidates map to upstream empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		})

		_, err := client.GenerateReply(context.Background(), "hi")
		assert.Equal(t, apperror.KindUpstreamEmpty, apperror.KindOf(err))
	})

	t.Run("whitespace-only text maps to upstream empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`))
		})

		_, err := client.GenerateReply(context.Background(), "hi")
		assert.Equal(t, apperror.KindUpstreamEmpty, apperror.KindOf(err))
	})

	t.Run("status mapping", func(t *testing.T) {
		cases := []struct {
			status  int
			kind    apperror.Kind
			details string
		}{
			{http.StatusBadRequest, apperror.KindUpstreamBadRequest, "upstream says no"},
			{http.StatusUnauthorized, apperror.KindUpstreamAuth, "upstream says no"},
			{http.StatusForbidden, apperror.KindUpstreamAuth, "upstream says no"},
			{http.StatusTooManyRequests, apperror.KindUpstreamRateLimited, "upstream says no"},
			// Unrecognized statuses keep the status code in the details.
			{http.StatusServiceUnavailable, apperror.KindUpstreamUnknown, "status 503: upstream says no"},
		}
		for _, tc := range cases {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":{"message":"upstream says no"}}`))
			})

			_, err := client.GenerateReply(context.Background(), "hi")
			appErr := apperror.From(err)
			assert.Equal(t, tc.kind, appErr.Kind, "status %d", tc.status)
			assert.Equal(t, tc.details, appErr.Details, "status %d", tc.status)
		}
	})

	t.Run("429 carries retry-after hint", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "42")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{}`))
		})

		_, err := client.GenerateReply(context.Background(), "hi")
		assert.Equal(t, 42, apperror.From(err).RetryAfterSeconds)
	})

	t.Run("timeout maps to upstream timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		t.Cleanup(srv.Close)
		client := NewClient("test-key", "gemini-2.0-flash", 20*time.Millisecond).WithBaseURL(srv.URL)

		_, err := client.GenerateReply(context.Background(), "hi")
		assert.Equal(t, apperror.KindUpstreamTimeout, apperror.KindOf(err))
	})

	t.Run("missing api key fails before any call", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		t.Cleanup(srv.Close)
		client := NewClient("", "gemini-2.0-flash", time.Second).WithBaseURL(srv.URL)

		_, err := client.GenerateReply(context.Background(), "hi")
		assert.Equal(t, apperror.KindUpstreamAuth, apperror.KindOf(err))
		assert.Zero(t, calls)
	})
}
