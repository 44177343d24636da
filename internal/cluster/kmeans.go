package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/rbrtjns90/statement-organizer/internal/common"
)

const maxIterations = 100

// kmeansFit runs Lloyd's algorithm with k-means++ seeding. Each restart
// draws fresh initial centroids from the shared seeded source; the restart
// with the lowest within-cluster sum of squares wins, so results are
// identical across runs for a given seed.
func kmeansFit(x *mat.Dense, k int, seed int64, restarts int) ([]int, error) {
	rows, cols := x.Dims()
	if rows < k || k < 1 {
		return nil, common.ErrTooFewSamples
	}
	if restarts < 1 {
		restarts = 1
	}

	rng := rand.New(rand.NewSource(seed))

	var bestLabels []int
	bestInertia := math.Inf(1)

	for r := 0; r < restarts; r++ {
		centroids := seedCentroids(x, k, rng)
		labels := make([]int, rows)

		var inertia float64
		for iter := 0; iter < maxIterations; iter++ {
			inertia = 0
			changed := false
			for i := 0; i < rows; i++ {
				row := x.RawRowView(i)
				best, bestDist := 0, math.Inf(1)
				for c := 0; c < k; c++ {
					d := squaredDistance(row, centroids[c])
					if d < bestDist {
						best, bestDist = c, d
					}
				}
				if labels[i] != best {
					labels[i] = best
					changed = true
				}
				inertia += bestDist
			}
			if !changed && iter > 0 {
				break
			}

			counts := make([]int, k)
			next := make([][]float64, k)
			for c := range next {
				next[c] = make([]float64, cols)
			}
			for i := 0; i < rows; i++ {
				counts[labels[i]]++
				row := x.RawRowView(i)
				for j, v := range row {
					next[labels[i]][j] += v
				}
			}
			for c := 0; c < k; c++ {
				if counts[c] == 0 {
					// Empty cluster: re-seed it on the farthest point.
					next[c] = farthestPoint(x, centroids, labels)
					continue
				}
				for j := range next[c] {
					next[c][j] /= float64(counts[c])
				}
			}
			centroids = next
		}

		if inertia < bestInertia {
			bestInertia = inertia
			bestLabels = append([]int(nil), labels...)
		}
	}

	if bestLabels == nil || math.IsNaN(bestInertia) || math.IsInf(bestInertia, 0) {
		return nil, common.ErrDegenerateInput
	}
	return bestLabels, nil
}

// seedCentroids picks initial centroids with k-means++: the first uniformly,
// each subsequent one with probability proportional to its squared distance
// from the nearest centroid chosen so far.
func seedCentroids(x *mat.Dense, k int, rng *rand.Rand) [][]float64 {
	rows, _ := x.Dims()
	centroids := make([][]float64, 0, k)

	first := rng.Intn(rows)
	centroids = append(centroids, append([]float64(nil), x.RawRowView(first)...))

	dists := make([]float64, rows)
	for len(centroids) < k {
		var total float64
		for i := 0; i < rows; i++ {
			row := x.RawRowView(i)
			nearest := math.Inf(1)
			for _, c := range centroids {
				if d := squaredDistance(row, c); d < nearest {
					nearest = d
				}
			}
			dists[i] = nearest
			total += nearest
		}

		if total <= 0 {
			// All points coincide with a centroid; pick uniformly.
			idx := rng.Intn(rows)
			centroids = append(centroids, append([]float64(nil), x.RawRowView(idx)...))
			continue
		}

		target := rng.Float64() * total
		var cumulative float64
		idx := rows - 1
		for i := 0; i < rows; i++ {
			cumulative += dists[i]
			if cumulative >= target {
				idx = i
				break
			}
		}
		centroids = append(centroids, append([]float64(nil), x.RawRowView(idx)...))
	}
	return centroids
}

// farthestPoint returns a copy of the row farthest from its assigned
// centroid, used to revive empty clusters.
func farthestPoint(x *mat.Dense, centroids [][]float64, labels []int) []float64 {
	rows, _ := x.Dims()
	bestIdx, bestDist := 0, -1.0
	for i := 0; i < rows; i++ {
		d := squaredDistance(x.RawRowView(i), centroids[labels[i]])
		if d > bestDist {
			bestIdx, bestDist = i, d
		}
	}
	return append([]float64(nil), x.RawRowView(bestIdx)...)
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
