package middleware

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
)

func TestPrometheusRecordsCycles(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	a := mountCounter(t, Prometheus(m))

	if err := a.Dispatch(context.Background(), increment); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"mount", m.cyclesTotal.WithLabelValues("mount", "success"), 1},
		{"increment", m.cyclesTotal.WithLabelValues("middleware.increment", "success"), 1},
		{"text changes", m.changesTotal.WithLabelValues("TextChanged"), 1},
		{"none changes", m.changesTotal.WithLabelValues("None"), 3},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(m.cycleDuration); n != 2 {
		t.Errorf("cycle_duration series = %d, want 2", n)
	}
}

func TestPrometheusRecordsErrors(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
	a := mountCounter(t, Prometheus(m))

	if err := a.Dispatch(context.Background(), negate); !errors.Is(err, dom.ErrUnknownTag) {
		t.Fatalf("Dispatch = %v, want ErrUnknownTag", err)
	}

	if got := testutil.ToFloat64(m.cyclesTotal.WithLabelValues("middleware.negate", "error")); got != 1 {
		t.Errorf("cycles_total(error) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cycleErrors.WithLabelValues("middleware.negate", "unknown_tag")); got != 1 {
		t.Errorf("cycle_errors_total(unknown_tag) = %v, want 1", got)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("x: %w", dom.ErrUnknownTag), "unknown_tag"},
		{fmt.Errorf("x: %w", reconcile.ErrNotHandler), "bad_handler"},
		{reconcile.ErrReorderUnsupported, "reorder_unsupported"},
		{dom.ErrIndexOutOfRange, "host"},
		{context.DeadlineExceeded, "timeout"},
		{errors.New("app: cycle 3 (x): panic: boom"), "panic"},
		{errors.New("something else"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestTransportMetrics(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))

	m.RecordFrame(10)
	m.RecordFrame(32)
	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()
	m.RecordWebSocketError("read")

	if got := testutil.ToFloat64(m.framesSent); got != 2 {
		t.Errorf("frames_sent_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.frameBytes); got != 42 {
		t.Errorf("frame_bytes_total = %v, want 42", got)
	}
	if got := testutil.ToFloat64(m.activeClients); got != 1 {
		t.Errorf("active_clients = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("websocket_errors_total(read) = %v, want 1", got)
	}
}
