package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/pkg/cache"
	"MacroPulse/pkg/logger"
)

type recordingMetrics struct {
	fetches map[string]int
	errors  int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{fetches: map[string]int{}}
}

func (m *recordingMetrics) RecordOverlayFetch(asset, outcome string) { m.fetches[asset+"/"+outcome]++ }
func (m *recordingMetrics) RecordOverlaySamples(string, int) {}
func (m *recordingMetrics) RecordSeriesPoints(int) {}
func (m *recordingMetrics) RecordLatency(string, float64) {}
func (m *recordingMetrics) RecordError(string) { m.errors++ }

const chartBody = `{"prices":[
	[1704067200000, 42000.5],
	[1704153600000, 44100.0],
	[1704186000000, 44900.0]
],"market_caps":[],"total_volumes":[]}`

func newClient(t *testing.T, h http.HandlerFunc, c cache.Service) (*Client, *recordingMetrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	m := newRecordingMetrics()
	return New(Config{
		BaseURL:      srv.URL + "/",
		APIKey:       "demo",
		APIKeyHeader: "x-cg-demo-api-key",
		Timeout:      time.Second,
		CacheTTL:     time.Hour,
	}, c, m, logger.Nop()), m
}

func TestHistoryKeysSamplesByDay(t *testing.T) {
	client, m := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "3650", r.URL.Query().Get("days"))
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))
		assert.Equal(t, "demo", r.Header.Get("x-cg-demo-api-key"))
		_, _ = w.Write([]byte(chartBody))
	}, nil)

	overlay := client.History(context.Background(), "bitcoin", 3650)
	require.Len(t, overlay, 2)
	assert.Equal(t, 42000.5, overlay["2024-01-01"])
	// the later sample of 2024-01-02 wins
	assert.Equal(t, 44900.0, overlay["2024-01-02"])
	assert.Equal(t, 1, m.fetches["bitcoin/ok"])
}

func TestHistoryFailuresYieldEmptyOverlay(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		},
		"malformed json": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"prices": [[1, `))
		},
		"missing prices": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error":"coin not found"}`))
		},
		"short pair": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"prices":[[1704067200000]]}`))
		},
		"wrong type": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"prices":"soon"}`))
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			client, m := newClient(t, h, nil)
			overlay := client.History(context.Background(), "ethereum", 30)
			assert.NotNil(t, overlay)
			assert.Empty(t, overlay)
			assert.Equal(t, 1, m.fetches["ethereum/error"])
			assert.Equal(t, 1, m.errors)
		})
	}
}

func TestHistoryTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)

	m := newRecordingMetrics()
	client := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil, m, logger.Nop())

	start := time.Now()
	assert.Empty(t, client.History(context.Background(), "bitcoin", 10))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, m.fetches["bitcoin/error"])
}

func TestHistoryEmptyPricesNotCached(t *testing.T) {
	var calls atomic.Int32
	mem := cache.NewMemoryCache()
	defer mem.Close()

	client, m := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"prices":[]}`))
	}, mem)

	assert.Empty(t, client.History(context.Background(), "bitcoin", 10))
	assert.Empty(t, client.History(context.Background(), "bitcoin", 10))
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, 2, m.fetches["bitcoin/empty"])
}

func TestHistoryServesFromCache(t *testing.T) {
	var calls atomic.Int32
	mem := cache.NewMemoryCache()
	defer mem.Close()

	client, m := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(chartBody))
	}, mem)

	first := client.History(context.Background(), "bitcoin", 3650)
	second := client.History(context.Background(), "bitcoin", 3650)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 1, m.fetches["bitcoin/cached"])

	// different horizon is a different key
	client.History(context.Background(), "bitcoin", 30)
	assert.EqualValues(t, 2, calls.Load())
}
