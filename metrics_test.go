package aurora

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)

	if collector == nil {
		t.Fatal("NewMetricsCollectorWithRegistry() returned nil")
	}

	if collector.requestsTotal == nil {
		t.Error("requestsTotal metric not initialized")
	}

	if collector.requestDuration == nil {
		t.Error("requestDuration metric not initialized")
	}

	if collector.requestsInFlight == nil {
		t.Error("requestsInFlight metric not initialized")
	}

	if collector.gateRejections == nil {
		t.Error("gateRejections metric not initialized")
	}

	if collector.rateLimitDenied == nil {
		t.Error("rateLimitDenied metric not initialized")
	}

	if collector.abortsTotal == nil {
		t.Error("abortsTotal metric not initialized")
	}

	if collector.errorsTotal == nil {
		t.Error("errorsTotal metric not initialized")
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var collector *MetricsCollector

	collector.RecordRequest("GET", "/x", 200, time.Millisecond)
	collector.RecordRequestStart("GET", "/x")
	collector.RecordRequestEnd("GET", "/x")
	collector.RecordGateRejection("GET")
	collector.RecordRateLimitDenial("GET")
	collector.RecordAbort("GET", "/x")
	collector.RecordError(ErrorTypeNetwork, "GET", "/x")
}

func TestMetricsRecordedOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)
	client := New(WithBaseURL(server.URL), WithMetricsCollector(collector))

	if _, err := client.Get(context.Background(), CallOptions{Endpoint: "/v1/items"}); err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}

	got := testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "200", "/v1/items"))
	if got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}

	inFlight := testutil.ToFloat64(collector.requestsInFlight.WithLabelValues("GET", "/v1/items"))
	if inFlight != 0 {
		t.Errorf("requests_in_flight after settlement = %v, want 0", inFlight)
	}
}

func TestMetricsRecordedOnGateRejection(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)
	client := New(
		WithBaseURL("https://api.x.com"),
		WithMaxConcurrentRequests(1),
		WithMetricsCollector(collector),
		WithTransport(TransportFunc(func(req *Request) (*Response, error) {
			<-block
			return &Response{StatusCode: 200}, nil
		})),
	)

	go func() {
		_, _ = client.Get(context.Background(), CallOptions{Endpoint: "/v1/items"})
	}()
	waitForInFlight(t, client, 1)

	if _, err := client.Get(context.Background(), CallOptions{Endpoint: "/v1/items"}); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("error = %v, want ErrLimitExceeded", err)
	}

	got := testutil.ToFloat64(collector.gateRejections.WithLabelValues("GET"))
	if got != 1 {
		t.Errorf("gate_rejections_total = %v, want 1", got)
	}
}

func TestMetricsRecordedOnClassifiedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)
	client := New(WithBaseURL(server.URL), WithMetricsCollector(collector))

	res, err := client.Get(context.Background(), CallOptions{Endpoint: "/v1/items"})
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if !res.HasError() {
		t.Fatal("expected classified error for 502")
	}

	got := testutil.ToFloat64(collector.errorsTotal.WithLabelValues(ErrorTypeHTTP, "GET", "/v1/items"))
	if got != 1 {
		t.Errorf("errors_total = %v, want 1", got)
	}

	total := testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "502", "/v1/items"))
	if total != 1 {
		t.Errorf("requests_total{status_code=502} = %v, want 1", total)
	}
}
