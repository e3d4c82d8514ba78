package artifacts

import (
	"fmt"
	"sort"

	"github.com/tasteai/v2/internal/domain/recommendation"
)

// Vectorizer is a fitted count vectorizer over a fixed ingredient vocabulary.
// The vocabulary maps normalized ingredient tokens to column indices and is
// learned by the offline training pipeline; serving only transforms.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`

	dim int
}

// init validates the vocabulary and fixes the output dimension.
func (v *Vectorizer) init() error {
	v.dim = len(v.Vocabulary)
	seen := make(map[int]bool, v.dim)
	for token, idx := range v.Vocabulary {
		if idx < 0 || idx >= v.dim {
			return fmt.Errorf("vectorizer: token %q has out-of-range index %d", token, idx)
		}
		if seen[idx] {
			return fmt.Errorf("vectorizer: duplicate column index %d", idx)
		}
		seen[idx] = true
	}
	return nil
}

// Dim returns the width of transformed vectors.
func (v *Vectorizer) Dim() int {
	return v.dim
}

// Transform encodes a comma-separated ingredient string as token counts over
// the fitted vocabulary. Unknown tokens contribute nothing, so malformed or
// out-of-vocabulary text degrades to a sparser vector instead of failing.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int]float64)
	for _, token := range recommendation.SplitTokens(text) {
		if idx, ok := v.Vocabulary[token]; ok {
			counts[idx]++
		}
	}
	return sparseFromCounts(counts, v.dim)
}

// sparseFromCounts builds a SparseVector with ascending indices.
func sparseFromCounts(counts map[int]float64, dim int) SparseVector {
	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	vec := SparseVector{
		Indices: indices,
		Values:  make([]float64, len(indices)),
		Dim:     dim,
	}
	for i, idx := range indices {
		vec.Values[i] = counts[idx]
	}
	return vec
}

// NewVectorizer creates a vectorizer from a fitted vocabulary.
func NewVectorizer(vocabulary map[string]int) (*Vectorizer, error) {
	v := &Vectorizer{Vocabulary: vocabulary}
	if err := v.init(); err != nil {
		return nil, err
	}
	return v, nil
}
