package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authzkit/authzkit/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	capture := func(captured *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*captured = requestid.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("generates id when header absent", func(t *testing.T) {
		t.Parallel()

		var captured string
		handler := requestid.Middleware(capture(&captured))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, captured)
		_, err := uuid.Parse(captured)
		assert.NoError(t, err)
		assert.Equal(t, captured, rec.Header().Get(requestid.Header))
	})

	t.Run("propagates valid inbound id", func(t *testing.T) {
		t.Parallel()

		var captured string
		handler := requestid.Middleware(capture(&captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.Header, "trace-abc_123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "trace-abc_123", captured)
		assert.Equal(t, "trace-abc_123", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces malformed inbound id", func(t *testing.T) {
		t.Parallel()

		for _, bad := range []string{
			"has spaces",
			"semi;colon",
			strings.Repeat("x", 200),
		} {
			var captured string
			handler := requestid.Middleware(capture(&captured))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(requestid.Header, bad)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.NotEqual(t, bad, captured)
			_, err := uuid.Parse(captured)
			assert.NoError(t, err)
		}
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Empty(t, requestid.FromContext(nil)) //nolint:staticcheck

	ctx := requestid.WithContext(context.Background(), "r-1")
	assert.Equal(t, "r-1", requestid.FromContext(ctx))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extractor := requestid.LoggerExtractor()

	_, ok := extractor(context.Background())
	assert.False(t, ok)

	ctx := requestid.WithContext(context.Background(), "r-9")
	attr, ok := extractor(ctx)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "r-9", attr.Value.String())
}
