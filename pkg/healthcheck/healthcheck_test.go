package healthcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheck(t *testing.T) {
	t.Run("AllHealthy", func(t *testing.T) {
		c := New("1.0.0", zap.NewNop())
		c.Register("ok", func(ctx context.Context) error { return nil })

		resp := c.Check(context.Background())

		assert.Equal(t, StatusHealthy, resp.Status)
		assert.Equal(t, "1.0.0", resp.Version)
		require.Len(t, resp.Checks, 1)
		assert.Equal(t, StatusHealthy, resp.Checks[0].Status)
	})

	t.Run("OneUnhealthy", func(t *testing.T) {
		c := New("1.0.0", zap.NewNop())
		c.Register("ok", func(ctx context.Context) error { return nil })
		c.Register("broken", func(ctx context.Context) error { return errors.New("connection refused") })

		resp := c.Check(context.Background())

		assert.Equal(t, StatusUnhealthy, resp.Status)
		require.Len(t, resp.Checks, 2)
		// Results are sorted by name
		assert.Equal(t, "broken", resp.Checks[0].Name)
		assert.Equal(t, "connection refused", resp.Checks[0].Message)
	})

	t.Run("CachesWithinTTL", func(t *testing.T) {
		c := New("1.0.0", zap.NewNop())
		calls := 0
		c.Register("counted", func(ctx context.Context) error {
			calls++
			return nil
		})

		c.Check(context.Background())
		c.Check(context.Background())

		assert.Equal(t, 1, calls)
	})

	t.Run("CacheExpires", func(t *testing.T) {
		c := New("1.0.0", zap.NewNop())
		c.cacheTTL = time.Millisecond
		calls := 0
		c.Register("counted", func(ctx context.Context) error {
			calls++
			return nil
		})

		c.Check(context.Background())
		time.Sleep(5 * time.Millisecond)
		c.Check(context.Background())

		assert.Equal(t, 2, calls)
	})
}

func TestHandler(t *testing.T) {
	t.Run("HealthyReturns200", func(t *testing.T) {
		c := New("1.0.0", zap.NewNop())
		c.Register("ok", func(ctx context.Context) error { return nil })

		rec := httptest.NewRecorder()
		c.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	})

	t.Run("UnhealthyReturns503", func(t *testing.T) {
		c := New("1.0.0", zap.NewNop())
		c.Register("broken", func(ctx context.Context) error { return errors.New("down") })

		rec := httptest.NewRecorder()
		c.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
