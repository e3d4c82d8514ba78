// Package recommendation contains the core domain model for the
// recommendation engines: the reference dataset, the query types, and the
// text normalization shared between training-time and serving-time encoding.
package recommendation

// RecipeRecord is a single row of the reference dataset. Records are
// immutable after load and are addressed by their row index; the palette
// field is only populated for the palette dataset.
type RecipeRecord struct {
	Name        string
	Ingredients string
	Palette     string
}

// Dataset is an immutable, ordered sequence of recipe records. Row i of the
// dataset corresponds to row i of every fitted artifact built from it.
type Dataset struct {
	records []RecipeRecord
}

// NewDataset creates a dataset from a slice of records. The slice is copied
// so later mutation by the caller cannot reach the dataset.
func NewDataset(records []RecipeRecord) *Dataset {
	copied := make([]RecipeRecord, len(records))
	copy(copied, records)
	return &Dataset{records: copied}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// At returns the record at row index i.
func (d *Dataset) At(i int) RecipeRecord {
	return d.records[i]
}

// Records returns all records in row order.
func (d *Dataset) Records() []RecipeRecord {
	return d.records
}

// Recommendation is one ranked result returned by an engine.
type Recommendation struct {
	Index       int
	Name        string
	Ingredients string
	Palette     string
}
