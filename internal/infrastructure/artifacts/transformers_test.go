package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasteai/v2/internal/domain/recommendation"
)

func TestVectorizer(t *testing.T) {
	v := &Vectorizer{Vocabulary: map[string]int{
		"chicken": 0,
		"garlic":  1,
		"rice":    2,
	}}
	require.NoError(t, v.init())
	require.Equal(t, 3, v.Dim())

	t.Run("CountsTokens", func(t *testing.T) {
		vec := v.Transform("chicken, rice, chicken")
		assert.Equal(t, []int{0, 2}, vec.Indices)
		assert.Equal(t, []float64{2, 1}, vec.Values)
	})

	t.Run("UnknownTokensIgnored", func(t *testing.T) {
		vec := v.Transform("dragonfruit, garlic")
		assert.Equal(t, []int{1}, vec.Indices)
		assert.Equal(t, []float64{1}, vec.Values)
	})

	t.Run("NormalizesCase", func(t *testing.T) {
		vec := v.Transform(" CHICKEN ")
		assert.Equal(t, []int{0}, vec.Indices)
	})

	t.Run("EmptyText", func(t *testing.T) {
		vec := v.Transform("")
		assert.Empty(t, vec.Indices)
		assert.Equal(t, 3, vec.Dim)
	})

	t.Run("DuplicateIndexRejected", func(t *testing.T) {
		bad := &Vectorizer{Vocabulary: map[string]int{"a": 0, "b": 0}}
		assert.Error(t, bad.init())
	})
}

func TestScaler(t *testing.T) {
	s := &Scaler{
		Mean:  []float64{10, 0, 0, 0, 0, 0, 5},
		Scale: []float64{2, 1, 1, 1, 1, 1, 0},
	}
	require.NoError(t, s.init())

	t.Run("StandardizesFeatures", func(t *testing.T) {
		out, err := s.Transform([]float64{14, 1, 2, 3, 4, 5, 6})
		require.NoError(t, err)
		assert.InDelta(t, 2.0, out[0], 1e-12)
		assert.InDelta(t, 1.0, out[1], 1e-12)
	})

	t.Run("ZeroScaleLeavesCenteredValue", func(t *testing.T) {
		out, err := s.Transform([]float64{0, 0, 0, 0, 0, 0, 8})
		require.NoError(t, err)
		assert.InDelta(t, 3.0, out[6], 1e-12)
	})

	t.Run("WrongLengthRejected", func(t *testing.T) {
		_, err := s.Transform([]float64{1, 2})
		assert.ErrorIs(t, err, recommendation.ErrDimensionMismatch)
	})

	t.Run("WrongFeatureCountRejected", func(t *testing.T) {
		bad := &Scaler{Mean: []float64{1, 2}, Scale: []float64{1, 1}}
		assert.Error(t, bad.init())
	})
}

func TestBinarizer(t *testing.T) {
	b := &Binarizer{Classes: []string{"bitter", "savory", "spicy", "sweet"}}
	require.NoError(t, b.init())

	t.Run("IndicatorVector", func(t *testing.T) {
		vec := b.Transform([]string{"spicy", "sweet"})
		assert.Equal(t, []int{2, 3}, vec.Indices)
		assert.Equal(t, []float64{1, 1}, vec.Values)
	})

	t.Run("DuplicatesCollapse", func(t *testing.T) {
		vec := b.Transform([]string{"spicy", "spicy"})
		assert.Equal(t, []int{2}, vec.Indices)
		assert.Equal(t, []float64{1}, vec.Values)
	})

	t.Run("UnknownTagsIgnored", func(t *testing.T) {
		vec := b.Transform([]string{"umami"})
		assert.Empty(t, vec.Indices)
		assert.Equal(t, 4, vec.Dim)
	})
}

func TestNeighborIndex(t *testing.T) {
	idx := &NeighborIndex{
		K:      2,
		Metric: "euclidean",
		Points: [][]float64{
			{0, 0},
			{1, 0},
			{5, 5},
			{0.5, 0},
		},
	}
	require.NoError(t, idx.init())

	t.Run("NearestFirst", func(t *testing.T) {
		indices, dists, err := idx.Kneighbors([]float64{0, 0})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 3}, indices)
		assert.InDelta(t, 0.0, dists[0], 1e-12)
		assert.InDelta(t, 0.5, dists[1], 1e-12)
	})

	t.Run("TieBreaksTowardLowerIndex", func(t *testing.T) {
		tied := &NeighborIndex{
			K:      2,
			Points: [][]float64{{1, 0}, {0, 1}, {2, 2}},
		}
		require.NoError(t, tied.init())

		indices, _, err := tied.Kneighbors([]float64{0, 0})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, indices)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, _, err := idx.Kneighbors([]float64{1, 1})
		require.NoError(t, err)
		b, _, err := idx.Kneighbors([]float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, _, err := idx.Kneighbors([]float64{1})
		assert.ErrorIs(t, err, recommendation.ErrDimensionMismatch)
	})

	t.Run("UnsupportedMetricRejected", func(t *testing.T) {
		bad := &NeighborIndex{K: 1, Metric: "cosine", Points: [][]float64{{1}}}
		assert.Error(t, bad.init())
	})
}
