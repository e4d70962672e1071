package coingecko

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	"MacroPulse/pkg/cache"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/logger"
	"MacroPulse/pkg/util"
)

// Fetch outcomes reported to metrics.
const (
	OutcomeOK     = "ok"
	OutcomeCached = "cached"
	OutcomeEmpty  = "empty"
	OutcomeError  = "error"
)

var errMalformed = errors.New("coingecko: malformed market chart")

type Config struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
	CacheTTL     time.Duration
}

// Client implements OverlaySource backed by the CoinGecko market_chart endpoint.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	cache   cache.Service
	metrics drepo.Metrics
	logger  *logger.Logger
}

var _ drepo.OverlaySource = (*Client)(nil)

// New creates a CoinGecko client. cache may be nil to disable caching.
func New(cfg Config, c cache.Service, m drepo.Metrics, l *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	opts := []xhttp.ClientOption{xhttp.WithTimeout(cfg.Timeout)}
	if cfg.APIKey != "" && cfg.APIKeyHeader != "" {
		opts = append(opts, xhttp.WithHeader(cfg.APIKeyHeader, cfg.APIKey))
	}

	return &Client{
		cfg:     cfg,
		http:    xhttp.NewClient(opts...),
		cache:   c,
		metrics: m,
		logger:  l,
	}
}

type marketChart struct {
	Prices *[][]float64 `json:"prices"`
}

// History returns daily USD prices keyed by calendar day. It never fails: transport
// errors, bad statuses and malformed bodies are logged and yield an empty overlay.
func (c *Client) History(ctx context.Context, assetID string, days int) models.Overlay {
	start := time.Now()
	defer func() {
		c.metrics.RecordLatency("coingecko_history", time.Since(start).Seconds())
	}()

	key := cache.GenerateKeyWithParams("coingecko:market_chart", assetID, days)
	if c.cache != nil {
		var cached models.Overlay
		if err := c.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			c.metrics.RecordOverlayFetch(assetID, OutcomeCached)
			return cached
		} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn("overlay cache read failed", logger.String("asset", assetID), logger.Error(err))
		}
	}

	overlay, err := c.fetch(ctx, assetID, days)
	if err != nil {
		c.logger.Warn("live overlay unavailable, falling back to interpolated data",
			logger.String("asset", assetID),
			logger.Error(err),
		)
		c.metrics.RecordOverlayFetch(assetID, OutcomeError)
		c.metrics.RecordError("overlay_fetch")
		return models.Overlay{}
	}
	if len(overlay) == 0 {
		c.metrics.RecordOverlayFetch(assetID, OutcomeEmpty)
		return overlay
	}

	c.metrics.RecordOverlayFetch(assetID, OutcomeOK)
	if c.cache != nil {
		if err := c.cache.Set(ctx, key, overlay, c.cfg.CacheTTL); err != nil {
			c.logger.Warn("overlay cache write failed", logger.String("asset", assetID), logger.Error(err))
		}
	}
	c.logger.Debug("live overlay fetched",
		logger.String("asset", assetID),
		logger.Int("days", len(overlay)),
		logger.Duration("duration_ms", time.Since(start)),
	)
	return overlay
}

func (c *Client) fetch(ctx context.Context, assetID string, days int) (models.Overlay, error) {
	var chart marketChart
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/coins/%s/market_chart", c.cfg.BaseURL, url.PathEscape(assetID)),
		QueryParams: map[string][]string{
			"vs_currency": {"usd"},
			"days":        {strconv.Itoa(days)},
			"interval":    {"daily"},
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("market chart %s: %w", assetID, err)
	}
	return toOverlay(chart)
}

// toOverlay keys each [epoch_ms, price] sample by its UTC day. Later samples for the same
// day replace earlier ones.
func toOverlay(chart marketChart) (models.Overlay, error) {
	if chart.Prices == nil {
		return nil, fmt.Errorf("%w: missing prices", errMalformed)
	}
	overlay := make(models.Overlay, len(*chart.Prices))
	for i, pair := range *chart.Prices {
		if len(pair) < 2 {
			return nil, fmt.Errorf("%w: sample %d has %d values", errMalformed, i, len(pair))
		}
		overlay[util.DayFromMillis(int64(pair[0]))] = pair[1]
	}
	return overlay, nil
}
