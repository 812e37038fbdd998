package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUseCase_CountsOutcomes(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "log-mood", Success: true, Duration: time.Millisecond})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "log-mood", Success: true})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "log-mood", Err: errors.New("boom")})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.useCaseTotal.WithLabelValues("log-mood", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.useCaseTotal.WithLabelValues("log-mood", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.useCaseDuration))
}

func TestObserveUseCase_CountsLevels(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "analyze", Success: true, Fields: map[string]any{service.FieldRiskLevel: "critical"}})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "report", Success: true, Fields: map[string]any{service.FieldRiskLevel: "watch"}})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "safety-check", Success: true, Fields: map[string]any{service.FieldSafetyLevel: "warning"}})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "log-mood", Success: true, Fields: map[string]any{"user_id": "u-1"}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.riskLevelTotal.WithLabelValues("critical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.riskLevelTotal.WithLabelValues("watch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.safetyTotal.WithLabelValues("warning")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.riskLevelTotal))
}

func TestHandler_ExposesNamespacedMetrics(t *testing.T) {
	m := New()
	m.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "analyze", Success: true})
	m.ObserveHTTP("GET", "/health", 200, 3*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `hackherth_use_case_total{outcome="success",use_case="analyze"} 1`)
	assert.Contains(t, string(body), `hackherth_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
