package series

import (
	"time"

	"github.com/shopspring/decimal"

	"MacroPulse/internal/domain/models"
	"MacroPulse/pkg/util"
)

// Interpolate expands consecutive anchor pairs into one point per calendar day, from the
// first anchor up to now or the last anchor, whichever comes first.
//
// Each segment [d0, d1) is half-open: the day at d1 is produced by the next segment, so the
// final anchor is never emitted itself. A segment starting after now ends generation
// entirely; within a segment generation stops at the first day after now.
func Interpolate(anchors []models.Anchor, now time.Time) []models.DailyPoint {
	if len(anchors) < 2 {
		return []models.DailyPoint{}
	}

	fields := models.InterpolatedFields()
	span := util.DaysBetween(anchors[0].Date, anchors[len(anchors)-1].Date)
	out := make([]models.DailyPoint, 0, int(max(span, 0)))

	for i := 0; i < len(anchors)-1; i++ {
		start, end := anchors[i], anchors[i+1]
		if start.Date.After(now) {
			break
		}

		totalDays := util.DaysBetween(start.Date, end.Date)
		if totalDays <= 0 {
			// rejected by dataset.Validate; skipped here so no Inf/NaN can leak out
			continue
		}

		for day := 0; float64(day) < totalDays; day++ {
			date := start.Date.AddDate(0, 0, day)
			if date.After(now) {
				break
			}
			out = append(out, interpolatePoint(start, end, date, float64(day)/totalDays, fields))
		}
	}

	return out
}

func interpolatePoint(start, end models.Anchor, date time.Time, factor float64, fields []models.Field) models.DailyPoint {
	p := models.DailyPoint{
		Date:      util.FormatDay(date),
		Timestamp: date.UnixMilli(),
	}
	for _, f := range fields {
		v := lerp(start.Value(f), end.Value(f), factor)
		p.Set(f, Round(v, f.Precision()))
	}
	return p
}

func lerp(from, to, factor float64) float64 {
	return from + (to-from)*factor
}

// Round rounds v to the given number of decimals, half away from zero.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
