package dataset

import (
	"errors"
	"fmt"

	"MacroPulse/internal/domain/models"
	"MacroPulse/pkg/util"
)

var (
	// ErrUnorderedAnchors reports anchors that are not strictly ascending by date. Two anchors
	// on the same day would make a zero-length interpolation segment.
	ErrUnorderedAnchors = errors.New("dataset: anchors must be strictly ascending by date")
	// ErrInvalidAnchor reports a row that cannot be turned into an anchor.
	ErrInvalidAnchor = errors.New("dataset: invalid anchor")
)

// Dataset is the immutable anchor table the interpolation engine expands.
type Dataset struct {
	anchors []models.Anchor
}

// New validates anchors and takes a private copy of them.
func New(anchors []models.Anchor) (*Dataset, error) {
	if err := Validate(anchors); err != nil {
		return nil, err
	}
	cp := make([]models.Anchor, len(anchors))
	copy(cp, anchors)
	return &Dataset{anchors: cp}, nil
}

// Default builds the compiled-in history.
func Default() (*Dataset, error) {
	anchors, err := HistoryAnchors()
	if err != nil {
		return nil, err
	}
	return New(anchors)
}

// HistoryAnchors converts the compiled-in rows to anchors without validating their order.
func HistoryAnchors() ([]models.Anchor, error) {
	out := make([]models.Anchor, 0, len(history))
	for i, r := range history {
		day, err := util.ParseDay(r.date)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidAnchor, i, err)
		}
		out = append(out, models.Anchor{
			Date:         day,
			CPI:          r.cpi,
			Rate:         r.rate,
			M2:           r.m2,
			Unemployment: r.unemp,
			SP500:        r.sp500,
			Nasdaq:       r.nasdaq,
			Bitcoin:      r.bitcoin,
			Ethereum:     r.ethereum,
			Gold:         r.gold,
		})
	}
	return out, nil
}

// Validate checks that anchor dates are UTC midnights in strictly ascending order.
func Validate(anchors []models.Anchor) error {
	for i, a := range anchors {
		if !a.Date.Equal(util.DayStart(a.Date)) {
			return fmt.Errorf("%w: anchor %d (%s) has a time component", ErrInvalidAnchor, i, a.Date)
		}
		if i == 0 {
			continue
		}
		prev := anchors[i-1].Date
		if !a.Date.After(prev) {
			return fmt.Errorf("%w: anchor %d (%s) is not after %s",
				ErrUnorderedAnchors, i, util.FormatDay(a.Date), util.FormatDay(prev))
		}
	}
	return nil
}

// Anchors returns a copy of the anchor table.
func (d *Dataset) Anchors() []models.Anchor {
	out := make([]models.Anchor, len(d.anchors))
	copy(out, d.anchors)
	return out
}

// Len is the number of anchors.
func (d *Dataset) Len() int { return len(d.anchors) }
