package cli

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/cfrac/internal/config"
	"github.com/aretw0/cfrac/internal/logging"
	"github.com/aretw0/cfrac/pkg/adapters/memory"
	"github.com/aretw0/cfrac/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime(t *testing.T) {
	ctx := context.Background()

	t.Run("No Cache", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Backend = config.BackendNone

		rt, err := NewRuntime(ctx, cfg, logging.NewNop(), false)
		require.NoError(t, err)
		defer rt.Close()
		assert.Nil(t, rt.Cache)

		_, err = rt.Engine.Expand(ctx, 22, 7)
		require.NoError(t, err)
	})

	t.Run("Memory Cache", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Capacity = 1

		rt, err := NewRuntime(ctx, cfg, logging.NewNop(), false)
		require.NoError(t, err)
		defer rt.Close()

		cache, ok := rt.Cache.(*memory.Cache)
		require.True(t, ok)

		_, err = rt.Engine.Expand(ctx, 22, 7)
		require.NoError(t, err)
		_, err = rt.Engine.Expand(ctx, 355, 113)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("Redis Cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default()
		cfg.Cache.Backend = config.BackendRedis
		cfg.Cache.Redis.Addr = mr.Addr()
		cfg.Cache.Redis.TTL = time.Hour

		rt, err := NewRuntime(ctx, cfg, logging.NewNop(), false)
		require.NoError(t, err)
		defer rt.Close()

		_, ok := rt.Cache.(*redis.Cache)
		require.True(t, ok)

		_, err = rt.Engine.Expand(ctx, 6, 4)
		require.NoError(t, err)
		assert.True(t, mr.Exists("cfrac:expansion:3/2"))
	})

	t.Run("Redis Unreachable", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		addr := mr.Addr()
		mr.Close()

		cfg := config.Default()
		cfg.Cache.Backend = config.BackendRedis
		cfg.Cache.Redis.Addr = addr

		_, err = NewRuntime(ctx, cfg, logging.NewNop(), false)
		assert.Error(t, err)
	})

	t.Run("Debug Hooks", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(&buf, slog.LevelDebug, false)

		rt, err := NewRuntime(ctx, config.Default(), logger, true)
		require.NoError(t, err)
		defer rt.Close()

		_, err = rt.Engine.Expand(ctx, 0, 0)
		require.Error(t, err)
		assert.Contains(t, buf.String(), "Operation (Error)")
	})
}

func TestNewHTTPHandler_Metrics(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, config.Default(), logging.NewNop(), false)
	require.NoError(t, err)
	defer rt.Close()

	h := NewHTTPHandler(rt)

	req := httptest.NewRequest(http.MethodPost, "/expand", strings.NewReader(`{"value":"22/7"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `cfrac_operations_total{operation="expand",outcome="ok"} 1`)

	req = httptest.NewRequest(http.MethodGet, "/cache", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"num":22`)
}

func TestRunServe_Shutdown(t *testing.T) {
	rt, err := NewRuntime(context.Background(), config.Default(), logging.NewNop(), false)
	require.NoError(t, err)
	defer rt.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunServe(ctx, rt, 0) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))

	logger, err = NewLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	_, err = NewLogger("chatty", false)
	assert.Error(t, err)
}
