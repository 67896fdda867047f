package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	h := NewPrometheusHooks(prometheus.NewRegistry())

	h.OnDecomposeStart(ctx, "pierced-first", 3)
	h.OnDecomposeComplete(ctx, "pierced-first", 3, time.Millisecond, nil)
	h.OnRecomposeComplete(ctx, "doubly-pierced", 0, time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(h.StagesTotal.WithLabelValues("decompose", "pierced-first", "ok")); got != 1 {
		t.Errorf("decompose ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.StagesTotal.WithLabelValues("recompose", "doubly-pierced", "error")); got != 1 {
		t.Errorf("recompose error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.StepsTotal.WithLabelValues("pierced-first")); got != 3 {
		t.Errorf("steps = %v, want 3", got)
	}

	h.OnCacheHit(ctx, "run")
	h.OnCacheMiss(ctx, "run")
	h.OnCacheMiss(ctx, "run")
	h.OnCacheSet(ctx, "artifact", 512)
	if got := testutil.ToFloat64(h.CacheEventsTotal.WithLabelValues("run", "miss")); got != 2 {
		t.Errorf("cache misses = %v, want 2", got)
	}

	h.OnRequest(ctx, "GET", "/healthz")
	if got := testutil.ToFloat64(h.HTTPRequestsInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)
	if got := testutil.ToFloat64(h.HTTPRequestsInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(h.HTTPRequestsTotal.WithLabelValues("GET", "/healthz", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestPrometheusHooksRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusHooks(reg)
	defer func() {
		if recover() == nil {
			t.Error("registering the same metrics twice should panic")
		}
	}()
	NewPrometheusHooks(reg)
}
