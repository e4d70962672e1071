package series

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"MacroPulse/internal/domain/models"
)

// Column extracts the values of f across points.
func Column(points []models.DailyPoint, f models.Field) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value(f)
	}
	return out
}

// Pearson computes r = (nΣxy - ΣxΣy) / sqrt((nΣx² - (Σx)²)(nΣy² - (Σy)²)).
// It returns 0 when either series is constant, the lengths differ, or the input is empty.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}
	if constant(x) || constant(y) {
		return 0
	}

	nf := float64(n)
	sumX, sumY := floats.Sum(x), floats.Sum(y)
	sumXY := floats.Dot(x, y)
	sumX2, sumY2 := floats.Dot(x, x), floats.Dot(y, y)

	num := nf*sumXY - sumX*sumY
	den := math.Sqrt((nf*sumX2 - sumX*sumX) * (nf*sumY2 - sumY*sumY))
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}

	r := num / den
	return math.Max(-1, math.Min(1, r))
}

// constant reports zero variance exactly; the sum-of-squares form can leave a tiny
// residue for constant non-integer series.
func constant(xs []float64) bool {
	return floats.Min(xs) == floats.Max(xs)
}

// Correlations returns the coefficient for every unordered pair of fields, ordered by
// selection: (0,1), (0,2), ..., (1,2), ... Fewer than two fields gives an empty result.
func Correlations(points []models.DailyPoint, fields []models.Field) []models.CorrelationPair {
	if len(fields) < 2 {
		return []models.CorrelationPair{}
	}

	columns := make([][]float64, len(fields))
	for i, f := range fields {
		columns[i] = Column(points, f)
	}

	pairs := make([]models.CorrelationPair, 0, len(fields)*(len(fields)-1)/2)
	for i := 0; i < len(fields); i++ {
		for j := i + 1; j < len(fields); j++ {
			pairs = append(pairs, models.CorrelationPair{
				A:           fields[i],
				B:           fields[j],
				Coefficient: Pearson(columns[i], columns[j]),
			})
		}
	}
	return pairs
}
