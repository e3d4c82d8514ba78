package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasteai/v2/internal/domain/recommendation"
	"github.com/tasteai/v2/pkg/logger"
)

// writeCalorieFixture lays out a minimal valid calorie artifact directory
func writeCalorieFixture(t *testing.T, dir string) {
	t.Helper()
	base := filepath.Join(dir, "calorie")
	require.NoError(t, os.MkdirAll(base, 0o755))

	writeFile(t, filepath.Join(base, "dataset.csv"),
		"recipe_name,ingredients_list\nPasta,\"pasta, tomato\"\nSalad,\"lettuce, cucumber\"\n")

	writeJSONFile(t, filepath.Join(base, "vectorizer.json"), Vectorizer{
		Vocabulary: map[string]int{"pasta": 0, "tomato": 1},
	})
	writeJSONFile(t, filepath.Join(base, "scaler.json"), Scaler{
		Mean:  []float64{0, 0, 0, 0, 0, 0, 0},
		Scale: []float64{1, 1, 1, 1, 1, 1, 1},
	})
	writeJSONFile(t, filepath.Join(base, "index.json"), NeighborIndex{
		K:      5,
		Metric: "euclidean",
		Points: [][]float64{
			make([]float64, 9),
			make([]float64, 9),
		},
	})
}

// writePaletteFixture lays out a minimal valid palette artifact directory
func writePaletteFixture(t *testing.T, dir string) {
	t.Helper()
	base := filepath.Join(dir, "palette")
	require.NoError(t, os.MkdirAll(base, 0o755))

	writeFile(t, filepath.Join(base, "dataset.csv"),
		"recipe_name,ingredients_list,palette\nPasta,\"pasta, tomato\",savory\nCake,\"flour, sugar\",sweet\n")

	writeJSONFile(t, filepath.Join(base, "vectorizer.json"), Vectorizer{
		Vocabulary: map[string]int{"flour": 0, "pasta": 1, "sugar": 2, "tomato": 3},
	})
	writeJSONFile(t, filepath.Join(base, "binarizer.json"), Binarizer{
		Classes: []string{"savory", "sweet"},
	})
	writeJSONFile(t, filepath.Join(base, "matrix.json"), CSRMatrix{
		RowCount: 2,
		ColCount: 6,
		IndPtr:   []int{0, 3, 6},
		Indices:  []int{1, 3, 4, 0, 2, 5},
		Data:     []float64{1, 1, 1, 1, 1, 1},
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeJSONFile(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoadCalorie(t *testing.T) {
	t.Run("ValidArtifacts", func(t *testing.T) {
		dir := t.TempDir()
		writeCalorieFixture(t, dir)

		bundle, err := NewLoader(dir, logger.NewNop()).LoadCalorie()
		require.NoError(t, err)

		assert.Equal(t, 2, bundle.Dataset.Len())
		assert.Equal(t, "Pasta", bundle.Dataset.At(0).Name)
		assert.Equal(t, 2, bundle.Vectorizer.Dim())
		assert.Equal(t, 5, bundle.Index.K)
	})

	t.Run("RowMisalignmentFails", func(t *testing.T) {
		dir := t.TempDir()
		writeCalorieFixture(t, dir)

		// One extra dataset row, index unchanged
		writeFile(t, filepath.Join(dir, "calorie", "dataset.csv"),
			"recipe_name,ingredients_list\nA,x\nB,y\nC,z\n")

		_, err := NewLoader(dir, logger.NewNop()).LoadCalorie()
		assert.ErrorIs(t, err, recommendation.ErrRowMisalignment)
	})

	t.Run("DimensionMismatchFails", func(t *testing.T) {
		dir := t.TempDir()
		writeCalorieFixture(t, dir)

		writeJSONFile(t, filepath.Join(dir, "calorie", "index.json"), NeighborIndex{
			K:      5,
			Points: [][]float64{make([]float64, 4), make([]float64, 4)},
		})

		_, err := NewLoader(dir, logger.NewNop()).LoadCalorie()
		assert.ErrorIs(t, err, recommendation.ErrDimensionMismatch)
	})

	t.Run("ShortDatasetRowFails", func(t *testing.T) {
		dir := t.TempDir()
		writeCalorieFixture(t, dir)

		// Second data row is missing its ingredients field
		writeFile(t, filepath.Join(dir, "calorie", "dataset.csv"),
			"recipe_name,ingredients_list\nPasta,\"pasta, tomato\"\nSalad\n")

		_, err := NewLoader(dir, logger.NewNop()).LoadCalorie()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "short row")
	})

	t.Run("MissingDirectoryFails", func(t *testing.T) {
		_, err := NewLoader(filepath.Join(t.TempDir(), "nope"), logger.NewNop()).LoadCalorie()
		assert.Error(t, err)
	})
}

func TestLoadPalette(t *testing.T) {
	t.Run("ValidArtifacts", func(t *testing.T) {
		dir := t.TempDir()
		writePaletteFixture(t, dir)

		bundle, err := NewLoader(dir, logger.NewNop()).LoadPalette()
		require.NoError(t, err)

		assert.Equal(t, 2, bundle.Dataset.Len())
		assert.Equal(t, "savory", bundle.Dataset.At(0).Palette)
		assert.Equal(t, 2, bundle.Binarizer.Dim())
		assert.Equal(t, 6, bundle.Matrix.Cols())
	})

	t.Run("MissingPaletteColumnFails", func(t *testing.T) {
		dir := t.TempDir()
		writePaletteFixture(t, dir)

		writeFile(t, filepath.Join(dir, "palette", "dataset.csv"),
			"recipe_name,ingredients_list\nA,x\nB,y\n")

		_, err := NewLoader(dir, logger.NewNop()).LoadPalette()
		assert.Error(t, err)
	})

	t.Run("RowMisalignmentFails", func(t *testing.T) {
		dir := t.TempDir()
		writePaletteFixture(t, dir)

		writeFile(t, filepath.Join(dir, "palette", "dataset.csv"),
			"recipe_name,ingredients_list,palette\nA,x,sweet\n")

		_, err := NewLoader(dir, logger.NewNop()).LoadPalette()
		assert.ErrorIs(t, err, recommendation.ErrRowMisalignment)
	})
}
