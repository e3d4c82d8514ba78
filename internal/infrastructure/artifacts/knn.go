package artifacts

import (
	"fmt"
	"math"
	"sort"

	"github.com/tasteai/v2/internal/domain/recommendation"
)

// NeighborIndex is a brute-force K-nearest-neighbor index over the dense
// combined calorie feature matrix. The metric and K are fixed at training
// time and are not request-configurable.
type NeighborIndex struct {
	K      int         `json:"k"`
	Metric string      `json:"metric"`
	Points [][]float64 `json:"points"`

	dim int
}

// init validates the index shape.
func (n *NeighborIndex) init() error {
	if n.K <= 0 {
		return fmt.Errorf("neighbor index: k must be positive, got %d", n.K)
	}
	if n.Metric != "" && n.Metric != "euclidean" {
		return fmt.Errorf("neighbor index: unsupported metric %q", n.Metric)
	}
	if len(n.Points) == 0 {
		return fmt.Errorf("neighbor index: no indexed rows")
	}
	n.dim = len(n.Points[0])
	for i, p := range n.Points {
		if len(p) != n.dim {
			return fmt.Errorf("neighbor index: row %d has %d features, want %d", i, len(p), n.dim)
		}
	}
	return nil
}

// Rows returns the number of indexed rows.
func (n *NeighborIndex) Rows() int {
	return len(n.Points)
}

// Dim returns the feature dimension of indexed rows.
func (n *NeighborIndex) Dim() int {
	return n.dim
}

// Kneighbors returns the indices and distances of the K rows nearest to the
// query, ordered nearest-first. Ties break toward the lower row index.
func (n *NeighborIndex) Kneighbors(query []float64) ([]int, []float64, error) {
	if len(query) != n.dim {
		return nil, nil, recommendation.ErrDimensionMismatch
	}

	distances := make([]float64, len(n.Points))
	order := make([]int, len(n.Points))
	for i, p := range n.Points {
		var sum float64
		for j, x := range p {
			d := query[j] - x
			sum += d * d
		}
		distances[i] = math.Sqrt(sum)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return distances[order[a]] < distances[order[b]]
	})

	k := n.K
	if k > len(order) {
		k = len(order)
	}
	indices := make([]int, k)
	dists := make([]float64, k)
	for i := 0; i < k; i++ {
		indices[i] = order[i]
		dists[i] = distances[order[i]]
	}
	return indices, dists, nil
}

// NewNeighborIndex creates a neighbor index from fitted points.
func NewNeighborIndex(k int, metric string, points [][]float64) (*NeighborIndex, error) {
	n := &NeighborIndex{K: k, Metric: metric, Points: points}
	if err := n.init(); err != nil {
		return nil, err
	}
	return n, nil
}
