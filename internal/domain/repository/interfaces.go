package repository

import (
	"context"

	"MacroPulse/internal/domain/models"
)

// OverlaySource supplies live daily values for an asset. Implementations never fail:
// any problem yields an empty overlay.
type OverlaySource interface {
	History(ctx context.Context, assetID string, days int) models.Overlay
}

type Metrics interface {
	RecordOverlayFetch(asset, outcome string)
	RecordOverlaySamples(field string, n int)
	RecordSeriesPoints(n int)
	RecordLatency(op string, seconds float64)
	RecordError(kind string)
}
