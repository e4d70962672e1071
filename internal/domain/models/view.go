package models

import (
	"errors"
	"fmt"
	"strings"
)

// Window is a trailing time range label.
type Window string

const (
	Window1Y  Window = "1Y"
	Window2Y  Window = "2Y"
	Window5Y  Window = "5Y"
	Window10Y Window = "10Y"

	DefaultWindow = Window5Y
)

// Days is the approximate point count of the window. Unknown labels get the default.
func (w Window) Days() int {
	switch w {
	case Window1Y:
		return 365
	case Window2Y:
		return 730
	case Window5Y:
		return 1825
	case Window10Y:
		return 3650
	default:
		return DefaultWindow.Days()
	}
}

// ParseWindow converts raw input to a window. Empty or unknown input yields the default
// window and false.
func ParseWindow(s string) (Window, bool) {
	w := Window(strings.ToUpper(strings.TrimSpace(s)))
	switch w {
	case Window1Y, Window2Y, Window5Y, Window10Y:
		return w, true
	default:
		return DefaultWindow, false
	}
}

// Mode selects how values of a view are presented.
type Mode string

const (
	ModeStandard   Mode = "STANDARD"
	ModePercentage Mode = "PERCENTAGE"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrTooManyFields = fmt.Errorf("at most %d fields can be selected", MaxSelection)
	DefaultSelection = []Field{FieldInterestRate, FieldBitcoin}
)

// ParseSelection validates raw field ids. Duplicates are dropped keeping first occurrence.
// An empty input selects DefaultSelection.
func ParseSelection(ids []string) ([]Field, error) {
	out := make([]Field, 0, len(ids))
	seen := make(map[Field]bool, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		info, ok := LookupField(id)
		if !ok || !info.Selectable {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, id)
		}
		if seen[info.ID] {
			continue
		}
		seen[info.ID] = true
		out = append(out, info.ID)
	}
	if len(out) == 0 {
		return append([]Field(nil), DefaultSelection...), nil
	}
	if len(out) > MaxSelection {
		return nil, ErrTooManyFields
	}
	return out, nil
}

// CorrelationPair is the Pearson coefficient of two fields over one window.
type CorrelationPair struct {
	A           Field   `json:"a"`
	B           Field   `json:"b"`
	Coefficient float64 `json:"coefficient"`
}

// Strength buckets the coefficient the way the dashboard colours it.
func (c CorrelationPair) Strength() string {
	switch {
	case c.Coefficient > 0.7:
		return "strong positive"
	case c.Coefficient > 0.3:
		return "positive"
	case c.Coefficient < -0.7:
		return "strong negative"
	case c.Coefficient < -0.3:
		return "negative"
	default:
		return "weak"
	}
}

// Insight is the three-part summary returned by the language model collaborator.
type Insight struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	KeyTakeaway string `json:"keyTakeaway"`
}

// InsightRequest carries what the collaborator needs: labels and a small sample.
type InsightRequest struct {
	Macros []string
	Assets []string
	Window Window
	Sample []DailyPoint
}
