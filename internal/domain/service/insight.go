package service

import (
	"context"

	"MacroPulse/internal/domain/models"
)

// InsightGenerator summarises a sampled view in plain language. It always returns a
// displayable insight; failures are expressed as fallback content.
type InsightGenerator interface {
	Generate(ctx context.Context, req models.InsightRequest) models.Insight
}
