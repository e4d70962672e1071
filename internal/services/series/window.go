package series

import "MacroPulse/internal/domain/models"

// Window returns the trailing w.Days() points, or all of them when the sequence is shorter.
// The result shares its backing array with points.
func Window(points []models.DailyPoint, w models.Window) []models.DailyPoint {
	if len(points) == 0 {
		return []models.DailyPoint{}
	}
	n := w.Days()
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

// Sample picks the first, middle and last point; fewer when the sequence is shorter.
func Sample(points []models.DailyPoint) []models.DailyPoint {
	switch len(points) {
	case 0:
		return []models.DailyPoint{}
	case 1, 2:
		out := make([]models.DailyPoint, len(points))
		copy(out, points)
		return out
	default:
		return []models.DailyPoint{points[0], points[len(points)/2], points[len(points)-1]}
	}
}
