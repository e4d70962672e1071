package series

import "MacroPulse/internal/domain/models"

// Baseline is the first strictly positive value of f, or 1 when there is none.
func Baseline(points []models.DailyPoint, f models.Field) float64 {
	for _, p := range points {
		if v := p.Value(f); v > 0 {
			return v
		}
	}
	return 1
}

// Normalize rewrites each selected field as percentage change from its baseline:
// (v - baseline) / baseline * 100. It works on a copy; points is left untouched.
func Normalize(points []models.DailyPoint, fields []models.Field) []models.DailyPoint {
	out := make([]models.DailyPoint, len(points))
	copy(out, points)

	seen := make(map[models.Field]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true

		base := Baseline(points, f)
		for i := range out {
			v := out[i].Value(f)
			out[i].Set(f, (v-base)/base*100)
		}
	}
	return out
}
