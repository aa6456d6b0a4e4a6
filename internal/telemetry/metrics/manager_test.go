package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ObserveStoreOp(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.ObserveStoreOp("get", nil, 2*time.Millisecond)
	m.ObserveStoreOp("get", nil, 3*time.Millisecond)
	m.ObserveStoreOp("set", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterStoreOps.WithLabelValues("get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStoreOps.WithLabelValues("set", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CounterStoreOps.WithLabelValues("set", "ok")))

	families, err := reg.Gather()
	require.NoError(t, err)

	var hist *dto.Histogram
	for _, f := range families {
		if f.GetName() != "tracker_test_server_store_op_duration_seconds" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "op" && l.GetValue() == "get" {
					hist = metric.GetHistogram()
				}
			}
		}
	}
	require.NotNil(t, hist)
	assert.Equal(t, uint64(2), hist.GetSampleCount())
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus(nil)
	m := NewManager("tracker", "main", reg)
	m.GaugeLifeSignal.Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
	assert.True(t, names["tracker_main_life_signal"])
}
