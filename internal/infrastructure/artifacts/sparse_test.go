package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasteai/v2/internal/domain/recommendation"
)

func TestSparseVector(t *testing.T) {
	t.Run("Norm", func(t *testing.T) {
		v := SparseVector{Indices: []int{0, 2}, Values: []float64{3, 4}, Dim: 4}
		assert.InDelta(t, 5.0, v.Norm(), 1e-12)
	})

	t.Run("Dense", func(t *testing.T) {
		v := SparseVector{Indices: []int{1, 3}, Values: []float64{2, 7}, Dim: 5}
		assert.Equal(t, []float64{0, 2, 0, 7, 0}, v.Dense())
	})

	t.Run("EmptyNorm", func(t *testing.T) {
		v := SparseVector{Dim: 3}
		assert.Zero(t, v.Norm())
	})
}

func TestHStack(t *testing.T) {
	a := SparseVector{Indices: []int{0, 2}, Values: []float64{1, 2}, Dim: 3}
	b := SparseVector{Indices: []int{1}, Values: []float64{5}, Dim: 2}

	got := HStack(a, b)

	assert.Equal(t, 5, got.Dim)
	assert.Equal(t, []int{0, 2, 4}, got.Indices)
	assert.Equal(t, []float64{1, 2, 5}, got.Values)
}

// csrFromRows builds a CSR matrix from dense rows for tests
func csrFromRows(rows [][]float64) *CSRMatrix {
	m := &CSRMatrix{
		RowCount: len(rows),
		IndPtr:   []int{0},
	}
	if len(rows) > 0 {
		m.ColCount = len(rows[0])
	}
	for _, row := range rows {
		for j, x := range row {
			if x != 0 {
				m.Indices = append(m.Indices, j)
				m.Data = append(m.Data, x)
			}
		}
		m.IndPtr = append(m.IndPtr, len(m.Data))
	}
	return m
}

func TestCSRMatrixValidate(t *testing.T) {
	t.Run("ValidMatrix", func(t *testing.T) {
		m := csrFromRows([][]float64{{1, 0}, {0, 2}})
		assert.NoError(t, m.Validate())
	})

	t.Run("BadIndPtrLength", func(t *testing.T) {
		m := csrFromRows([][]float64{{1, 0}})
		m.IndPtr = []int{0}
		assert.ErrorIs(t, m.Validate(), recommendation.ErrDimensionMismatch)
	})

	t.Run("OutOfRangeColumn", func(t *testing.T) {
		m := csrFromRows([][]float64{{1, 0}})
		m.Indices[0] = 9
		assert.ErrorIs(t, m.Validate(), recommendation.ErrDimensionMismatch)
	})
}

func TestCosineSimilarities(t *testing.T) {
	t.Run("IdenticalRowScoresOne", func(t *testing.T) {
		m := csrFromRows([][]float64{
			{1, 0, 1},
			{0, 1, 0},
		})
		q := SparseVector{Indices: []int{0, 2}, Values: []float64{1, 1}, Dim: 3}

		sims, err := m.CosineSimilarities(q)
		require.NoError(t, err)
		require.Len(t, sims, 2)
		assert.InDelta(t, 1.0, sims[0], 1e-12)
		assert.InDelta(t, 0.0, sims[1], 1e-12)
	})

	t.Run("OrthogonalScoresZero", func(t *testing.T) {
		m := csrFromRows([][]float64{{1, 0}})
		q := SparseVector{Indices: []int{1}, Values: []float64{1}, Dim: 2}

		sims, err := m.CosineSimilarities(q)
		require.NoError(t, err)
		assert.Zero(t, sims[0])
	})

	t.Run("ZeroQueryScoresAllZero", func(t *testing.T) {
		m := csrFromRows([][]float64{{1, 1}, {2, 0}})
		q := SparseVector{Dim: 2}

		sims, err := m.CosineSimilarities(q)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, sims)
	})

	t.Run("ZeroRowScoresZero", func(t *testing.T) {
		m := csrFromRows([][]float64{{0, 0}, {1, 0}})
		q := SparseVector{Indices: []int{0}, Values: []float64{1}, Dim: 2}

		sims, err := m.CosineSimilarities(q)
		require.NoError(t, err)
		assert.Zero(t, sims[0])
		assert.InDelta(t, 1.0, sims[1], 1e-12)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		m := csrFromRows([][]float64{{1, 0}})
		q := SparseVector{Dim: 5}

		_, err := m.CosineSimilarities(q)
		assert.ErrorIs(t, err, recommendation.ErrDimensionMismatch)
	})
}
