package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"MacroPulse/internal/dataset"
	"MacroPulse/internal/domain/repository"
	domsvc "MacroPulse/internal/domain/service"
	"MacroPulse/internal/handler/api"
	"MacroPulse/internal/service/coingecko"
	"MacroPulse/internal/service/ratelimit"
	"MacroPulse/internal/services/insight"
	"MacroPulse/internal/usecase"
	"MacroPulse/pkg/cache"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/logger"
	"MacroPulse/pkg/metrics"
	"MacroPulse/pkg/server"
)

// limiterIdle is how long an unused per-client limiter is kept.
const limiterIdle = 10 * time.Minute

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(logger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry served on the metrics path.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideCache returns the in-process LRU, fronting Redis when it is enabled.
func ProvideCache(cfg *config.Config, l *logger.Logger) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemorySize),
			cache.WithMemoryDefaultTTL(cfg.CoinGecko.CacheTTL),
		), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rc, err := cache.NewRedisCache(ctx,
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("redis cache connected",
		logger.String("host", cfg.Cache.Redis.Host),
		logger.Int("port", cfg.Cache.Redis.Port),
	)
	return cache.NewLayeredCache(rc, cache.WithLayeredMemorySize(cfg.Cache.MemorySize)), nil
}

// ProvideDataset loads the embedded anchor history.
func ProvideDataset() (*dataset.Dataset, error) {
	return dataset.Default()
}

// ProvideOverlaySource creates the CoinGecko market chart client.
func ProvideOverlaySource(cfg *config.Config, c cache.Service, m repository.Metrics, l *logger.Logger) repository.OverlaySource {
	return coingecko.New(coingecko.Config{
		BaseURL:      cfg.CoinGecko.BaseURL,
		APIKey:       cfg.CoinGecko.APIKey,
		APIKeyHeader: cfg.CoinGecko.APIKeyHeader,
		Timeout:      cfg.CoinGecko.Timeout,
		CacheTTL:     cfg.CoinGecko.CacheTTL,
	}, c, m, l)
}

// ProvideInsightGenerator creates the Gemini backed insight generator.
func ProvideInsightGenerator(cfg *config.Config, m repository.Metrics, l *logger.Logger) domsvc.InsightGenerator {
	return insight.NewGemini(insight.Config{
		BaseURL: cfg.Insight.BaseURL,
		Model:   cfg.Insight.Model,
		APIKey:  cfg.Insight.APIKey,
		Timeout: cfg.Insight.Timeout,
		Retries: cfg.Insight.Retries,
	}, m, l)
}

// ProvideMarketData creates the snapshot loader.
func ProvideMarketData(
	cfg *config.Config,
	ds *dataset.Dataset,
	source repository.OverlaySource,
	m repository.Metrics,
	c cache.Service,
	l *logger.Logger,
) (*usecase.MarketData, error) {
	assets, err := usecase.ParseAssets(cfg.CoinGecko.Assets)
	if err != nil {
		return nil, fmt.Errorf("coingecko assets: %w", err)
	}
	return usecase.NewMarketData(ds, source, m, c, l, time.Now, usecase.MarketDataConfig{
		Assets:      assets,
		Days:        cfg.CoinGecko.Days,
		LoadTimeout: cfg.Refresh.LoadTimeout,
	}), nil
}

// ProvideDashboard creates the read side use case.
func ProvideDashboard(market *usecase.MarketData, gen domsvc.InsightGenerator, m repository.Metrics, l *logger.Logger) *usecase.Dashboard {
	return usecase.NewDashboard(market, gen, m, l)
}

// ProvideLimiter creates the per-client limiter for the expensive endpoints.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Insight.Rate, cfg.Insight.Burst, limiterIdle)
}

// ProvideHandler creates the dashboard HTTP handler.
func ProvideHandler(l *logger.Logger, d *usecase.Dashboard, limiter *ratelimit.Limiter) xhttp.Handler {
	return api.NewDashboardEchoHandler(l, d, limiter)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, reg *prometheus.Registry, l *logger.Logger) *xhttp.Server {
	path := ""
	if cfg.Metrics.Enabled {
		path = cfg.Metrics.Path
	}
	return xhttp.NewServer(h,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.AllowOrigins...),
		xhttp.WithMetricsPath(path),
		xhttp.WithRegistry(reg),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	market *usecase.MarketData,
	srv *xhttp.Server,
	c cache.Service,
) *server.App {
	return server.New(cfg, l, market, srv, c)
}
