package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/evaluator"
	"github.com/khanhnv2901/pwcheck/internal/strength"
)

func TestMetricsCountEvaluations(t *testing.T) {
	metrics := NewMetrics()
	eval := &stubEvaluator{report: evaluator.Report{
		Strength: strength.Result{Score: 6, Tier: strength.VeryStrong},
		Breach:   breach.Result{Found: true, Count: 2},
	}}
	srv := NewServer(Config{Evaluator: eval, Metrics: metrics})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(`{"password":"x"}`))
		rr := httptest.NewRecorder()
		srv.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	}

	if got := testutil.ToFloat64(metrics.evaluations.WithLabelValues("Very Strong")); got != 2 {
		t.Fatalf("evaluations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.lookups.WithLabelValues("found")); got != 2 {
		t.Fatalf("found lookups = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("/api/v1/evaluate", "200")); got != 2 {
		t.Fatalf("requests = %v, want 2", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := NewMetrics()
	srv := NewServer(Config{Evaluator: &stubEvaluator{}, Metrics: metrics, AuthToken: "secret"})

	// unknown paths collapse into one label
	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/123", nil))

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("metrics must require auth, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("X-Auth-Token", "secret")
	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `pwcheck_http_requests_total{route="other",status="404"} 1`) {
		t.Fatalf("expected bounded route label in metrics output:\n%s", body)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.observeRequest("/api/v1/health", 200, 0)
	m.observeTier(strength.Weak)
	m.observeLookup(breach.Result{})
	m.observeRateLimited()

	srv := NewServer(Config{Evaluator: &stubEvaluator{}})
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected /metrics to be absent without Metrics, got %d", rr.Code)
	}
}
