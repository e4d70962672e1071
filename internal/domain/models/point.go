package models

import "time"

// Anchor is one curated historical observation. Date is a UTC midnight.
type Anchor struct {
	Date         time.Time
	CPI          float64
	Rate         float64
	M2           float64
	Unemployment float64
	SP500        float64
	Nasdaq       float64
	Bitcoin      float64
	Ethereum     float64
	Gold         float64
}

// Value returns the anchor's observation for f. GDP and unknown fields are zero.
func (a Anchor) Value(f Field) float64 {
	switch f {
	case FieldCPI:
		return a.CPI
	case FieldInterestRate:
		return a.Rate
	case FieldM2:
		return a.M2
	case FieldUnemployment:
		return a.Unemployment
	case FieldSP500:
		return a.SP500
	case FieldNasdaq:
		return a.Nasdaq
	case FieldBitcoin:
		return a.Bitcoin
	case FieldEthereum:
		return a.Ethereum
	case FieldGold:
		return a.Gold
	default:
		return 0
	}
}

// DailyPoint is one synthesized calendar day.
type DailyPoint struct {
	Date         string  `json:"date"`      // YYYY-MM-DD
	Timestamp    int64   `json:"timestamp"` // epoch ms of UTC midnight
	CPI          float64 `json:"cpi"`
	InterestRate float64 `json:"interestRate"`
	Unemployment float64 `json:"unemployment"`
	M2           float64 `json:"m2"`
	GDP          float64 `json:"gdp"`
	SP500        float64 `json:"sp500"`
	Nasdaq       float64 `json:"nasdaq"`
	Bitcoin      float64 `json:"bitcoin"`
	Ethereum     float64 `json:"ethereum"`
	Gold         float64 `json:"gold"`
}

// Value returns the point's value for f, zero for unknown fields.
func (p DailyPoint) Value(f Field) float64 {
	switch f {
	case FieldCPI:
		return p.CPI
	case FieldInterestRate:
		return p.InterestRate
	case FieldUnemployment:
		return p.Unemployment
	case FieldM2:
		return p.M2
	case FieldGDP:
		return p.GDP
	case FieldSP500:
		return p.SP500
	case FieldNasdaq:
		return p.Nasdaq
	case FieldBitcoin:
		return p.Bitcoin
	case FieldEthereum:
		return p.Ethereum
	case FieldGold:
		return p.Gold
	default:
		return 0
	}
}

// Set assigns v to field f. Unknown fields are ignored.
func (p *DailyPoint) Set(f Field, v float64) {
	switch f {
	case FieldCPI:
		p.CPI = v
	case FieldInterestRate:
		p.InterestRate = v
	case FieldUnemployment:
		p.Unemployment = v
	case FieldM2:
		p.M2 = v
	case FieldGDP:
		p.GDP = v
	case FieldSP500:
		p.SP500 = v
	case FieldNasdaq:
		p.Nasdaq = v
	case FieldBitcoin:
		p.Bitcoin = v
	case FieldEthereum:
		p.Ethereum = v
	case FieldGold:
		p.Gold = v
	}
}

// Overlay maps a calendar day (YYYY-MM-DD) to a live value.
type Overlay map[string]float64

// Snapshot is a loaded, merged series. It is read-only once published.
type Snapshot struct {
	Points      []DailyPoint
	GeneratedAt time.Time     // the "now" interpolation was bounded by
	LoadedAt    time.Time     // when the merge finished
	LiveSamples map[Field]int // overlay size per field, zero when the fetch failed
}

// SnapshotSummary is the health view of a Snapshot.
type SnapshotSummary struct {
	Points      int           `json:"points"`
	FirstDate   string        `json:"firstDate,omitempty"`
	LastDate    string        `json:"lastDate,omitempty"`
	GeneratedAt time.Time     `json:"generatedAt"`
	LoadedAt    time.Time     `json:"loadedAt"`
	LiveSamples map[Field]int `json:"liveSamples"`
}

// Summary reports size and bounds of the snapshot.
func (s *Snapshot) Summary() SnapshotSummary {
	if s == nil {
		return SnapshotSummary{LiveSamples: map[Field]int{}}
	}
	sum := SnapshotSummary{
		Points:      len(s.Points),
		GeneratedAt: s.GeneratedAt,
		LoadedAt:    s.LoadedAt,
		LiveSamples: make(map[Field]int, len(s.LiveSamples)),
	}
	for f, n := range s.LiveSamples {
		sum.LiveSamples[f] = n
	}
	if len(s.Points) > 0 {
		sum.FirstDate = s.Points[0].Date
		sum.LastDate = s.Points[len(s.Points)-1].Date
	}
	return sum
}
