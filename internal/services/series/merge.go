package series

import "MacroPulse/internal/domain/models"

// Merge overlays live values onto points. For every overlay-eligible field present in
// overlays, a point takes the live value when the overlay has an entry for its exact date.
// Everything else is copied unchanged. The input slice is not modified.
func Merge(points []models.DailyPoint, overlays map[models.Field]models.Overlay) []models.DailyPoint {
	out := make([]models.DailyPoint, len(points))
	copy(out, points)

	for field, overlay := range overlays {
		if len(overlay) == 0 || !field.Overlayable() {
			continue
		}
		for i := range out {
			if v, ok := overlay[out[i].Date]; ok {
				out[i].Set(field, v)
			}
		}
	}

	return out
}

// Matched counts the points of a sequence that have an overlay entry.
func Matched(points []models.DailyPoint, overlay models.Overlay) int {
	if len(overlay) == 0 {
		return 0
	}
	n := 0
	for _, p := range points {
		if _, ok := overlay[p.Date]; ok {
			n++
		}
	}
	return n
}
