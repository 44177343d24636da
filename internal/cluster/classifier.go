// Package cluster partitions a page's lines into structurally similar groups
// and picks the group most likely to hold transaction rows.
package cluster

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/rbrtjns90/statement-organizer/internal/feature"
)

// Classifier assigns an integer group label to every line on a page. Labels
// are arbitrary until scored by the Selector. Implementations hold no state
// across pages.
type Classifier interface {
	Classify(vectors []feature.Vector) []int
}

// RuleBased is the deterministic fallback classifier: lines with a money
// shape get label 1, everything else label 0. It is used on its own in
// fully deterministic environments and as the recovery path when k-means
// cannot fit.
type RuleBased struct{}

// Classify implements Classifier.
func (RuleBased) Classify(vectors []feature.Vector) []int {
	labels := make([]int, len(vectors))
	for i, v := range vectors {
		if v.HasMoney > 0 {
			labels[i] = 1
		}
	}
	return labels
}

// KMeans partitions lines by running seeded k-means over the numeric
// feature matrix. A fixed seed and several restarts keep the output
// reproducible and reduce sensitivity to initialization.
type KMeans struct {
	Seed     int64
	Restarts int
	MaxK     int
}

// NewKMeans returns a classifier with the standard settings: seed 42,
// 8 restarts, at most 8 clusters.
func NewKMeans() *KMeans {
	return &KMeans{Seed: 42, Restarts: 8, MaxK: 8}
}

// Classify implements Classifier. Fewer than two lines short-circuit to a
// single trivial cluster; a failed fit falls back to the rule-based split.
func (k *KMeans) Classify(vectors []feature.Vector) []int {
	n := len(vectors)
	if n < 2 {
		return make([]int, n)
	}

	numClusters := n / 5
	if numClusters < 2 {
		numClusters = 2
	}
	if numClusters > k.MaxK {
		numClusters = k.MaxK
	}
	if numClusters > n {
		numClusters = n
	}

	matrix := buildMatrix(vectors)
	standardize(matrix)
	labels, err := kmeansFit(matrix, numClusters, k.Seed, k.Restarts)
	if err != nil {
		slog.Debug("k-means fit failed, using rule-based fallback",
			"lines", n, "error", err)
		return RuleBased{}.Classify(vectors)
	}
	return labels
}

// buildMatrix lays the feature vectors out as one row per line, columns in
// the fixed feature.Names ordering.
func buildMatrix(vectors []feature.Vector) *mat.Dense {
	rows := len(vectors)
	cols := len(feature.Names)
	m := mat.NewDense(rows, cols, nil)
	for i, v := range vectors {
		m.SetRow(i, v.Values())
	}
	return m
}

// standardize z-scores each column in place so raw character counts do not
// drown out the boolean shape features. Constant columns are left at zero.
func standardize(m *mat.Dense) {
	rows, cols := m.Dims()
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			for i := 0; i < rows; i++ {
				m.Set(i, j, 0)
			}
			continue
		}
		for i := 0; i < rows; i++ {
			m.Set(i, j, (col[i]-mean)/std)
		}
	}
}
