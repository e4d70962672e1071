package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/dataset"
	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/service/ratelimit"
	"MacroPulse/internal/usecase"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/logger"
	"MacroPulse/pkg/metrics"
)

type noOverlay struct{}

func (noOverlay) History(context.Context, string, int) models.Overlay { return models.Overlay{} }

type cannedInsight struct{}

func (cannedInsight) Generate(context.Context, models.InsightRequest) models.Insight {
	return models.Insight{Title: "Gravity", Content: "c", KeyTakeaway: "k"}
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, load bool, limiter *ratelimit.Limiter) *xhttp.Server {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) }
	md := usecase.NewMarketData(ds, noOverlay{}, metrics.Nop{}, nil, logger.Nop(), clock, usecase.MarketDataConfig{
		Assets: map[models.Field]string{models.FieldBitcoin: "bitcoin"},
	})
	if load {
		_, err := md.Load(context.Background())
		require.NoError(t, err)
	}
	dash := usecase.NewDashboard(md, cannedInsight{}, metrics.Nop{}, logger.Nop())
	h := NewDashboardEchoHandler(logger.Nop(), dash, limiter)

	return xhttp.NewServer(h, xhttp.WithRegistry(prometheus.NewRegistry()), xhttp.WithLogger(logger.Nop()))
}

func do(t *testing.T, srv *xhttp.Server, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestMetricsEndpointListsFields(t *testing.T) {
	srv := newTestServer(t, true, nil)
	rec, env := do(t, srv, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	var fields []models.FieldInfo
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Len(t, fields, 9)
	assert.Equal(t, models.FieldInterestRate, fields[0].ID)
}

func TestSeriesDefaults(t *testing.T) {
	srv := newTestServer(t, true, nil)
	rec, env := do(t, srv, http.MethodGet, "/api/series", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view usecase.SeriesView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, models.Window5Y, view.Range)
	assert.Equal(t, models.ModeStandard, view.Mode)
	assert.Equal(t, models.DefaultSelection, view.Fields)
	assert.Len(t, view.Points, 1825)
	assert.Equal(t, "2025-01-15", view.Points[len(view.Points)-1].Date)
}

func TestSeriesPercentageAndUnknownRange(t *testing.T) {
	srv := newTestServer(t, true, nil)
	rec, env := do(t, srv, http.MethodGet, "/api/series?range=3Y&fields=gold,bitcoin,gold&mode=PERCENTAGE", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view usecase.SeriesView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, models.Window5Y, view.Range)
	assert.Equal(t, []models.Field{models.FieldGold, models.FieldBitcoin}, view.Fields)
	assert.InDelta(t, 0, view.Points[0].Gold, 1e-9)
	assert.Contains(t, view.Baselines, models.FieldGold)
}

func TestSeriesRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, true, nil)

	rec, _ := do(t, srv, http.MethodGet, "/api/series?fields=bitcoin,dogecoin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_UNKNOWN_FIELD")

	rec, _ = do(t, srv, http.MethodGet, "/api/series?fields=cpi,m2,gold,sp500,nasdaq", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_TOO_MANY_FIELDS")

	rec, _ = do(t, srv, http.MethodGet, "/api/series?mode=LOG", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_ONEOF")

	rec, _ = do(t, srv, http.MethodGet, "/api/series?fields=gdp", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCorrelations(t *testing.T) {
	srv := newTestServer(t, true, nil)

	rec, env := do(t, srv, http.MethodGet, "/api/correlations?range=1Y&fields=interestRate,bitcoin,gold", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view usecase.CorrelationView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.True(t, view.Applicable)
	assert.Equal(t, 365, view.Points)
	assert.Len(t, view.Pairs, 3)

	rec, env = do(t, srv, http.MethodGet, "/api/correlations?fields=bitcoin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = usecase.CorrelationView{}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.False(t, view.Applicable)
	assert.Empty(t, view.Pairs)
}

func TestInsight(t *testing.T) {
	srv := newTestServer(t, true, nil)
	rec, env := do(t, srv, http.MethodPost, "/api/insight", `{"fields":["m2","sp500"],"range":"10Y"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var ins models.Insight
	require.NoError(t, json.Unmarshal(env.Data, &ins))
	assert.Equal(t, "Gravity", ins.Title)

	rec, _ = do(t, srv, http.MethodPost, "/api/insight", `{"fields":[""]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightRateLimited(t *testing.T) {
	srv := newTestServer(t, true, ratelimit.New(0.001, 1, time.Minute))

	rec, _ := do(t, srv, http.MethodPost, "/api/insight", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, srv, http.MethodPost, "/api/insight", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_RATE_LIMITED")

	// other routes keep their own budget
	rec, _ = do(t, srv, http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthAndRefresh(t *testing.T) {
	srv := newTestServer(t, false, nil)

	rec, env := do(t, srv, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sum models.SnapshotSummary
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Zero(t, sum.Points)

	rec, _ = do(t, srv, http.MethodGet, "/api/series", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, srv, http.MethodPost, "/api/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, "2015-01-01", sum.FirstDate)
	assert.Equal(t, "2025-01-15", sum.LastDate)
	assert.Contains(t, sum.LiveSamples, models.FieldBitcoin)
}

func TestPrometheusScrape(t *testing.T) {
	srv := newTestServer(t, true, nil)
	do(t, srv, http.MethodGet, "/api/health", "")

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}

func TestUnknownRouteIs404(t *testing.T) {
	srv := newTestServer(t, true, nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
