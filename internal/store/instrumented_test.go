package store_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chihironakai0517/workout-tracker/internal/store"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/metrics"
)

func TestInstrumented_ObservesOps(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewTestManager()
	kv := store.NewInstrumented(store.NewMemoryStore(), m)

	require.NoError(t, kv.Set(ctx, "workout-history", []byte(`[]`)))
	_, err := kv.Get(ctx, "workout-history")
	require.NoError(t, err)
	_, err = kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = kv.Keys(ctx, "timer-state:")
	require.NoError(t, err)
	require.NoError(t, kv.Del(ctx, "workout-history"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStoreOps.WithLabelValues("set", "ok")))
	// a missing key counts as a successful lookup
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterStoreOps.WithLabelValues("get", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CounterStoreOps.WithLabelValues("get", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStoreOps.WithLabelValues("keys", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStoreOps.WithLabelValues("del", "ok")))
}

func TestInstrumented_NilObserver(t *testing.T) {
	kv := store.NewInstrumented(store.NewMemoryStore(), nil)
	assert.NoError(t, kv.Set(context.Background(), "k", []byte(`1`)))
}
