package artifacts

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tasteai/v2/internal/domain/recommendation"
	"go.uber.org/zap"
)

// Artifact file layout under the configured directory. The files are produced
// by the offline training pipeline; serving only deserializes them.
const (
	calorieDir = "calorie"
	paletteDir = "palette"

	datasetFile    = "dataset.csv"
	vectorizerFile = "vectorizer.json"
	scalerFile     = "scaler.json"
	indexFile      = "index.json"
	binarizerFile  = "binarizer.json"
	matrixFile     = "matrix.json"
)

// CalorieBundle holds the fitted artifacts of the calorie engine. Row i of
// the neighbor index corresponds to row i of the dataset.
type CalorieBundle struct {
	Dataset    *recommendation.Dataset
	Vectorizer *Vectorizer
	Scaler     *Scaler
	Index      *NeighborIndex
}

// PaletteBundle holds the fitted artifacts of the palette engine. Row i of
// the feature matrix corresponds to row i of the dataset.
type PaletteBundle struct {
	Dataset    *recommendation.Dataset
	Vectorizer *Vectorizer
	Binarizer  *Binarizer
	Matrix     *CSRMatrix
}

// Loader deserializes fitted artifacts from a directory configured at
// startup. Any failure here is fatal: the process must not begin serving
// with missing or misaligned artifacts.
type Loader struct {
	dir    string
	logger *zap.Logger
}

// NewLoader creates a loader rooted at the given artifact directory.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	return &Loader{
		dir:    dir,
		logger: logger.Named("artifact-loader"),
	}
}

// LoadCalorie loads and validates the calorie engine artifacts.
func (l *Loader) LoadCalorie() (*CalorieBundle, error) {
	base := filepath.Join(l.dir, calorieDir)

	dataset, err := l.loadDataset(filepath.Join(base, datasetFile), false)
	if err != nil {
		return nil, err
	}

	var vectorizer Vectorizer
	if err := l.loadJSON(filepath.Join(base, vectorizerFile), &vectorizer); err != nil {
		return nil, err
	}
	if err := vectorizer.init(); err != nil {
		return nil, fmt.Errorf("calorie artifacts: %w", err)
	}

	var scaler Scaler
	if err := l.loadJSON(filepath.Join(base, scalerFile), &scaler); err != nil {
		return nil, err
	}
	if err := scaler.init(); err != nil {
		return nil, fmt.Errorf("calorie artifacts: %w", err)
	}

	var index NeighborIndex
	if err := l.loadJSON(filepath.Join(base, indexFile), &index); err != nil {
		return nil, err
	}
	if err := index.init(); err != nil {
		return nil, fmt.Errorf("calorie artifacts: %w", err)
	}

	// Row alignment is validated once here, never per request.
	if index.Rows() != dataset.Len() {
		return nil, fmt.Errorf("calorie artifacts: index has %d rows, dataset has %d: %w",
			index.Rows(), dataset.Len(), recommendation.ErrRowMisalignment)
	}
	if want := scaler.Dim() + vectorizer.Dim(); index.Dim() != want {
		return nil, fmt.Errorf("calorie artifacts: index dimension %d, combined features %d: %w",
			index.Dim(), want, recommendation.ErrDimensionMismatch)
	}

	l.logger.Info("Loaded calorie artifacts",
		zap.Int("rows", dataset.Len()),
		zap.Int("vocabulary", vectorizer.Dim()),
		zap.Int("k", index.K),
	)

	return &CalorieBundle{
		Dataset:    dataset,
		Vectorizer: &vectorizer,
		Scaler:     &scaler,
		Index:      &index,
	}, nil
}

// LoadPalette loads and validates the palette engine artifacts.
func (l *Loader) LoadPalette() (*PaletteBundle, error) {
	base := filepath.Join(l.dir, paletteDir)

	dataset, err := l.loadDataset(filepath.Join(base, datasetFile), true)
	if err != nil {
		return nil, err
	}

	var vectorizer Vectorizer
	if err := l.loadJSON(filepath.Join(base, vectorizerFile), &vectorizer); err != nil {
		return nil, err
	}
	if err := vectorizer.init(); err != nil {
		return nil, fmt.Errorf("palette artifacts: %w", err)
	}

	var binarizer Binarizer
	if err := l.loadJSON(filepath.Join(base, binarizerFile), &binarizer); err != nil {
		return nil, err
	}
	if err := binarizer.init(); err != nil {
		return nil, fmt.Errorf("palette artifacts: %w", err)
	}

	var matrix CSRMatrix
	if err := l.loadJSON(filepath.Join(base, matrixFile), &matrix); err != nil {
		return nil, err
	}
	if err := matrix.Validate(); err != nil {
		return nil, fmt.Errorf("palette artifacts: invalid feature matrix: %w", err)
	}

	if matrix.Rows() != dataset.Len() {
		return nil, fmt.Errorf("palette artifacts: matrix has %d rows, dataset has %d: %w",
			matrix.Rows(), dataset.Len(), recommendation.ErrRowMisalignment)
	}
	if want := vectorizer.Dim() + binarizer.Dim(); matrix.Cols() != want {
		return nil, fmt.Errorf("palette artifacts: matrix has %d columns, combined features %d: %w",
			matrix.Cols(), want, recommendation.ErrDimensionMismatch)
	}
	matrix.precomputeNorms()

	l.logger.Info("Loaded palette artifacts",
		zap.Int("rows", dataset.Len()),
		zap.Int("vocabulary", vectorizer.Dim()),
		zap.Int("classes", binarizer.Dim()),
	)

	return &PaletteBundle{
		Dataset:    dataset,
		Vectorizer: &vectorizer,
		Binarizer:  &binarizer,
		Matrix:     &matrix,
	}, nil
}

// loadJSON decodes a single JSON artifact file.
func (l *Loader) loadJSON(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return nil
}

// loadDataset reads a reference dataset CSV. The header row must carry
// recipe_name and ingredients_list, plus palette when withPalette is set.
func (l *Loader) loadDataset(path string, withPalette bool) (*recommendation.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header %s: %w", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	nameCol, ok := cols["recipe_name"]
	if !ok {
		return nil, fmt.Errorf("dataset %s: missing recipe_name column", path)
	}
	ingredientsCol, ok := cols["ingredients_list"]
	if !ok {
		return nil, fmt.Errorf("dataset %s: missing ingredients_list column", path)
	}
	paletteCol := -1
	if withPalette {
		paletteCol, ok = cols["palette"]
		if !ok {
			return nil, fmt.Errorf("dataset %s: missing palette column", path)
		}
	}

	var records []recommendation.RecipeRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset %s row %d: %w", path, len(records)+1, err)
		}
		if len(row) <= nameCol || len(row) <= ingredientsCol {
			return nil, fmt.Errorf("dataset %s row %d: short row with %d fields", path, len(records)+1, len(row))
		}
		record := recommendation.RecipeRecord{
			Name:        row[nameCol],
			Ingredients: row[ingredientsCol],
		}
		if paletteCol >= 0 && paletteCol < len(row) {
			record.Palette = row[paletteCol]
		}
		records = append(records, record)
	}
	return recommendation.NewDataset(records), nil
}
