package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountersAccumulatePerSeries(t *testing.T) {
	r := NewRegistry()
	r.IncCounter("rank_requests_total", map[string]string{"mode": "standard"}, 1)
	r.IncCounter("rank_requests_total", map[string]string{"mode": "standard"}, 1)
	r.IncCounter("rank_requests_total", map[string]string{"mode": "debug"}, 1)
	r.IncCounter("rank_requests_total", nil, 0)

	snap := r.Snapshot()
	require.Len(t, snap.Counters, 2)
	require.Equal(t, "debug", snap.Counters[0].Labels["mode"])
	require.Equal(t, 1.0, snap.Counters[0].Value)
	require.Equal(t, "standard", snap.Counters[1].Labels["mode"])
	require.Equal(t, 2.0, snap.Counters[1].Value)
}

func TestGaugesOverwrite(t *testing.T) {
	r := NewRegistry()
	r.SetGauge("rank_model_latency_seconds", nil, 1.5)
	r.SetGauge("rank_model_latency_seconds", nil, 0.25)

	snap := r.Snapshot()
	require.Len(t, snap.Gauges, 1)
	require.Equal(t, 0.25, snap.Gauges[0].Value)
}

func TestSnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	r.IncCounter("c", map[string]string{"k": "v"}, 1)

	snap := r.Snapshot()
	snap.Counters[0].Labels["k"] = "mutated"
	snap.Counters[0].Value = 99

	again := r.Snapshot()
	require.Equal(t, "v", again.Counters[0].Labels["k"])
	require.Equal(t, 1.0, again.Counters[0].Value)
}

func TestReset(t *testing.T) {
	r := NewRegistry()
	r.IncCounter("c", nil, 1)
	r.SetGauge("g", nil, 1)
	r.Reset()

	snap := r.Snapshot()
	require.Empty(t, snap.Counters)
	require.Empty(t, snap.Gauges)
}

func TestRenderPrometheus(t *testing.T) {
	r := NewRegistry()
	r.IncCounter("rank_requests_total", map[string]string{"mode": "standard"}, 3)
	r.SetGauge("rank_model_latency_seconds", nil, 0.5)

	out := r.RenderPrometheus()
	require.Contains(t, out, `rank_requests_total{mode="standard"} 3`)
	require.Contains(t, out, "rank_model_latency_seconds 0.5")
}

func TestSanitizeName(t *testing.T) {
	require.Equal(t, "http_requests_total", sanitizeName("http.requests-total"))
	require.Equal(t, "dynamicdo_metric", sanitizeName("  "))
	require.Equal(t, "_xx", sanitizeName("5xx"))
}
