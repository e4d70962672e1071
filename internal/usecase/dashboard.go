package usecase

import (
	"context"
	"errors"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	domsvc "MacroPulse/internal/domain/service"
	"MacroPulse/internal/services/series"
	"MacroPulse/pkg/logger"
)

// SnapshotStore is the part of MarketData the dashboard reads and refreshes.
type SnapshotStore interface {
	Current() (*models.Snapshot, error)
	Load(ctx context.Context) (*models.Snapshot, error)
}

type SeriesView struct {
	Range     models.Window            `json:"range"`
	Mode      models.Mode              `json:"mode"`
	Fields    []models.Field           `json:"fields"`
	Baselines map[models.Field]float64 `json:"baselines,omitempty"`
	Points    []models.DailyPoint      `json:"points"`
}

type PairView struct {
	A           models.Field `json:"a"`
	B           models.Field `json:"b"`
	LabelA      string       `json:"labelA"`
	LabelB      string       `json:"labelB"`
	Coefficient float64      `json:"coefficient"`
	Strength    string       `json:"strength"`
}

type CorrelationView struct {
	Range      models.Window  `json:"range"`
	Fields     []models.Field `json:"fields"`
	Points     int            `json:"points"`
	Applicable bool           `json:"applicable"`
	Pairs      []PairView     `json:"pairs"`
}

// Dashboard computes the per-request views over the current snapshot. Nothing here
// mutates the snapshot.
type Dashboard struct {
	store   SnapshotStore
	insight domsvc.InsightGenerator
	metrics domrepo.Metrics
	logger  *logger.Logger
}

func NewDashboard(store SnapshotStore, insight domsvc.InsightGenerator, m domrepo.Metrics, l *logger.Logger) *Dashboard {
	return &Dashboard{store: store, insight: insight, metrics: m, logger: l}
}

// Fields lists the selectable series.
func (d *Dashboard) Fields() []models.FieldInfo {
	return models.SelectableFields()
}

// points returns the snapshot's points, or none before the first load.
func (d *Dashboard) points() ([]models.DailyPoint, error) {
	snap, err := d.store.Current()
	if errors.Is(err, ErrNoSnapshot) {
		return []models.DailyPoint{}, nil
	}
	if err != nil {
		return nil, err
	}
	return snap.Points, nil
}

// Series returns the trailing window, normalized to percentage change when asked.
func (d *Dashboard) Series(_ context.Context, w models.Window, mode models.Mode, fields []models.Field) (SeriesView, error) {
	all, err := d.points()
	if err != nil {
		return SeriesView{}, err
	}
	view := SeriesView{Range: w, Mode: mode, Fields: fields}
	windowed := series.Window(all, w)

	if mode == models.ModePercentage {
		view.Baselines = make(map[models.Field]float64, len(fields))
		for _, f := range fields {
			view.Baselines[f] = series.Baseline(windowed, f)
		}
		view.Points = series.Normalize(windowed, fields)
		return view, nil
	}

	// copy so callers can never reach the snapshot's backing array
	view.Points = make([]models.DailyPoint, len(windowed))
	copy(view.Points, windowed)
	return view, nil
}

// Correlations returns the pairwise coefficients of the selection over the window.
// Fewer than two fields is not an error: the view is just not applicable.
func (d *Dashboard) Correlations(_ context.Context, w models.Window, fields []models.Field) (CorrelationView, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordLatency("correlations", time.Since(start).Seconds())
	}()

	all, err := d.points()
	if err != nil {
		return CorrelationView{}, err
	}
	windowed := series.Window(all, w)
	view := CorrelationView{
		Range:      w,
		Fields:     fields,
		Points:     len(windowed),
		Applicable: len(fields) >= 2,
		Pairs:      []PairView{},
	}
	for _, p := range series.Correlations(windowed, fields) {
		view.Pairs = append(view.Pairs, PairView{
			A:           p.A,
			B:           p.B,
			LabelA:      p.A.Label(),
			LabelB:      p.B.Label(),
			Coefficient: p.Coefficient,
			Strength:    p.Strength(),
		})
	}
	return view, nil
}

// Insight asks the generator to explain the selection using a three point sample.
func (d *Dashboard) Insight(ctx context.Context, w models.Window, fields []models.Field) (models.Insight, error) {
	all, err := d.points()
	if err != nil {
		return models.Insight{}, err
	}

	req := models.InsightRequest{
		Macros: []string{},
		Assets: []string{},
		Window: w,
		Sample: series.Sample(series.Window(all, w)),
	}
	for _, f := range fields {
		if f.Info().Kind == models.KindMacro {
			req.Macros = append(req.Macros, f.Label())
		} else {
			req.Assets = append(req.Assets, f.Label())
		}
	}
	return d.insight.Generate(ctx, req), nil
}

// Refresh reloads the snapshot now.
func (d *Dashboard) Refresh(ctx context.Context) (models.SnapshotSummary, error) {
	snap, err := d.store.Load(ctx)
	if err != nil {
		d.metrics.RecordError("refresh")
		return models.SnapshotSummary{}, err
	}
	return snap.Summary(), nil
}

// Health summarises the current snapshot. Before the first load it reports zero points.
func (d *Dashboard) Health() models.SnapshotSummary {
	snap, err := d.store.Current()
	if err != nil {
		return (*models.Snapshot)(nil).Summary()
	}
	return snap.Summary()
}
