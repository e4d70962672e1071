package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"MacroPulse/internal/dataset"
	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/services/series"
	"MacroPulse/pkg/cache"
	"MacroPulse/pkg/logger"
)

// ErrNoSnapshot is returned before the first successful load.
var ErrNoSnapshot = errors.New("market data: no snapshot loaded")

const refreshLockKey = "lock:market_data:refresh"

// Clock supplies "now" to interpolation.
type Clock func() time.Time

type MarketDataConfig struct {
	Assets      map[models.Field]string // overlay field -> upstream asset id
	Days        int
	LoadTimeout time.Duration
}

// ParseAssets validates a field id -> asset id mapping from configuration.
func ParseAssets(raw map[string]string) (map[models.Field]string, error) {
	out := make(map[models.Field]string, len(raw))
	for id, asset := range raw {
		info, ok := models.LookupField(id)
		if !ok || !info.Overlay {
			return nil, fmt.Errorf("field %q cannot take a live overlay", id)
		}
		if asset == "" {
			return nil, fmt.Errorf("field %q has no asset id", id)
		}
		out[info.ID] = asset
	}
	return out, nil
}

// MarketData builds the merged daily series and publishes it as a read-only snapshot.
type MarketData struct {
	anchors []models.Anchor
	source  domrepo.OverlaySource
	metrics domrepo.Metrics
	locker  cache.Service
	logger  *logger.Logger
	clock   Clock
	cfg     MarketDataConfig

	loadMu sync.Mutex
	mu     sync.RWMutex
	snap   *models.Snapshot
}

// NewMarketData wires the loader. locker is optional; when set, concurrent refreshes across
// instances sharing it are collapsed into one.
func NewMarketData(ds *dataset.Dataset, source domrepo.OverlaySource, m domrepo.Metrics, locker cache.Service, l *logger.Logger, clock Clock, cfg MarketDataConfig) *MarketData {
	if clock == nil {
		clock = time.Now
	}
	if cfg.Days <= 0 {
		cfg.Days = 3650
	}
	return &MarketData{
		anchors: ds.Anchors(),
		source:  source,
		metrics: m,
		locker:  locker,
		logger:  l,
		clock:   clock,
		cfg:     cfg,
	}
}

// Load interpolates the anchors up to now, fetches every configured overlay concurrently,
// merges them and swaps the snapshot in. Overlay failures only shrink the overlay.
func (m *MarketData) Load(ctx context.Context) (*models.Snapshot, error) {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	if m.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.LoadTimeout)
		defer cancel()
	}

	if release, ok := m.acquire(ctx); !ok {
		if cur, err := m.Current(); err == nil {
			m.logger.Info("refresh already running elsewhere, keeping current snapshot")
			return cur, nil
		}
	} else {
		defer release()
	}

	start := time.Now()
	now := m.clock()
	points := series.Interpolate(m.anchors, now)
	overlays := m.fetchOverlays(ctx)

	merged := series.Merge(points, overlays)
	live := make(map[models.Field]int, len(m.cfg.Assets))
	for f := range m.cfg.Assets {
		live[f] = series.Matched(merged, overlays[f])
		m.metrics.RecordOverlaySamples(string(f), live[f])
	}

	snap := &models.Snapshot{
		Points:      merged,
		GeneratedAt: now,
		LoadedAt:    m.clock(),
		LiveSamples: live,
	}

	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()

	m.metrics.RecordSeriesPoints(len(merged))
	m.metrics.RecordLatency("market_data_load", time.Since(start).Seconds())
	m.logger.Info("market data loaded",
		logger.Int("points", len(merged)),
		logger.Any("live_samples", live),
		logger.Duration("duration_ms", time.Since(start)),
	)
	return snap, nil
}

// fetchOverlays runs one task per asset and waits for all of them. Tasks never fail;
// an asset whose fetch failed simply has an empty overlay.
func (m *MarketData) fetchOverlays(ctx context.Context) map[models.Field]models.Overlay {
	fields := make([]models.Field, 0, len(m.cfg.Assets))
	for f := range m.cfg.Assets {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	results := make([]models.Overlay, len(fields))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fields {
		i, f := i, f
		g.Go(func() error {
			results[i] = m.source.History(gctx, m.cfg.Assets[f], m.cfg.Days)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[models.Field]models.Overlay, len(fields))
	for i, f := range fields {
		out[f] = results[i]
	}
	return out
}

func (m *MarketData) acquire(ctx context.Context) (func(), bool) {
	if m.locker == nil {
		return func() {}, true
	}
	ttl := m.cfg.LoadTimeout
	if ttl <= 0 {
		ttl = time.Minute
	}
	ok, err := m.locker.TryLock(ctx, refreshLockKey, ttl)
	if err != nil {
		// a broken lock backend must not block loading
		m.logger.Warn("refresh lock unavailable", logger.Error(err))
		return func() {}, true
	}
	if !ok {
		return nil, false
	}
	return func() {
		if err := m.locker.Unlock(context.Background(), refreshLockKey); err != nil {
			m.logger.Warn("refresh unlock failed", logger.Error(err))
		}
	}, true
}

// Current returns the published snapshot.
func (m *MarketData) Current() (*models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return nil, ErrNoSnapshot
	}
	return m.snap, nil
}
