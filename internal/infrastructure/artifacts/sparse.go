// Package artifacts provides the fitted model artifacts the recommendation
// engines serve from: vectorizers, the nutrient scaler, the palette
// binarizer, the neighbor index, and the precomputed feature matrix. All of
// them are deserialized once at startup and are read-only afterwards, so they
// are safe for unsynchronized concurrent use.
package artifacts

import (
	"math"

	"github.com/tasteai/v2/internal/domain/recommendation"
)

// SparseVector is a sparse row vector as parallel index/value slices.
// Indices are sorted ascending and unique.
type SparseVector struct {
	Indices []int
	Values  []float64
	Dim     int
}

// Norm returns the Euclidean norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dense expands the vector into a dense slice of length Dim.
func (v SparseVector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for i, idx := range v.Indices {
		out[idx] = v.Values[i]
	}
	return out
}

// HStack concatenates two sparse vectors horizontally, shifting the second
// vector's indices past the first vector's dimension.
func HStack(a, b SparseVector) SparseVector {
	out := SparseVector{
		Indices: make([]int, 0, len(a.Indices)+len(b.Indices)),
		Values:  make([]float64, 0, len(a.Values)+len(b.Values)),
		Dim:     a.Dim + b.Dim,
	}
	out.Indices = append(out.Indices, a.Indices...)
	out.Values = append(out.Values, a.Values...)
	for i, idx := range b.Indices {
		out.Indices = append(out.Indices, idx+a.Dim)
		out.Values = append(out.Values, b.Values[i])
	}
	return out
}

// CSRMatrix is a compressed sparse row matrix. Row i holds the combined
// feature vector of dataset row i.
type CSRMatrix struct {
	RowCount int       `json:"rows"`
	ColCount int       `json:"cols"`
	IndPtr   []int     `json:"indptr"`
	Indices  []int     `json:"indices"`
	Data     []float64 `json:"data"`

	rowNorms []float64
}

// Rows returns the number of rows.
func (m *CSRMatrix) Rows() int {
	return m.RowCount
}

// Cols returns the number of columns.
func (m *CSRMatrix) Cols() int {
	return m.ColCount
}

// Validate checks structural consistency of the CSR layout.
func (m *CSRMatrix) Validate() error {
	if len(m.IndPtr) != m.RowCount+1 {
		return recommendation.ErrDimensionMismatch
	}
	if len(m.Indices) != len(m.Data) {
		return recommendation.ErrDimensionMismatch
	}
	if m.RowCount > 0 && m.IndPtr[m.RowCount] != len(m.Data) {
		return recommendation.ErrDimensionMismatch
	}
	for _, idx := range m.Indices {
		if idx < 0 || idx >= m.ColCount {
			return recommendation.ErrDimensionMismatch
		}
	}
	return nil
}

// precomputeNorms caches per-row Euclidean norms for cosine scoring.
func (m *CSRMatrix) precomputeNorms() {
	m.rowNorms = make([]float64, m.RowCount)
	for row := 0; row < m.RowCount; row++ {
		var sum float64
		for k := m.IndPtr[row]; k < m.IndPtr[row+1]; k++ {
			sum += m.Data[k] * m.Data[k]
		}
		m.rowNorms[row] = math.Sqrt(sum)
	}
}

// CosineSimilarities computes the cosine similarity between the query vector
// and every matrix row, returning one score per row. A zero-norm query or row
// scores zero rather than dividing by zero.
func (m *CSRMatrix) CosineSimilarities(q SparseVector) ([]float64, error) {
	if q.Dim != m.ColCount {
		return nil, recommendation.ErrDimensionMismatch
	}
	if m.rowNorms == nil {
		m.precomputeNorms()
	}

	// Scatter the query into a dense lookup so each row is a single pass.
	dense := make([]float64, q.Dim)
	for i, idx := range q.Indices {
		dense[idx] = q.Values[i]
	}
	qNorm := q.Norm()

	sims := make([]float64, m.RowCount)
	if qNorm == 0 {
		return sims, nil
	}
	for row := 0; row < m.RowCount; row++ {
		if m.rowNorms[row] == 0 {
			continue
		}
		var dot float64
		for k := m.IndPtr[row]; k < m.IndPtr[row+1]; k++ {
			dot += m.Data[k] * dense[m.Indices[k]]
		}
		sims[row] = dot / (qNorm * m.rowNorms[row])
	}
	return sims, nil
}

// NewCSRMatrix creates a validated CSR matrix with precomputed row norms.
func NewCSRMatrix(rows, cols int, indPtr, indices []int, data []float64) (*CSRMatrix, error) {
	m := &CSRMatrix{
		RowCount: rows,
		ColCount: cols,
		IndPtr:   indPtr,
		Indices:  indices,
		Data:     data,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.precomputeNorms()
	return m, nil
}
