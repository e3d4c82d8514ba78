package artifacts

import "fmt"

// Binarizer is a fitted multi-label binarizer: it maps a set of palette tags
// to a fixed-width indicator vector over the tag vocabulary learned at
// training time. Unknown tags are ignored.
type Binarizer struct {
	Classes []string `json:"classes"`

	index map[string]int
}

// init builds the class lookup.
func (b *Binarizer) init() error {
	b.index = make(map[string]int, len(b.Classes))
	for i, class := range b.Classes {
		if _, dup := b.index[class]; dup {
			return fmt.Errorf("binarizer: duplicate class %q", class)
		}
		b.index[class] = i
	}
	return nil
}

// Dim returns the width of transformed vectors.
func (b *Binarizer) Dim() int {
	return len(b.Classes)
}

// Transform encodes a normalized tag set as a 0/1 indicator vector. Tag order
// does not matter; duplicates collapse to a single 1.
func (b *Binarizer) Transform(tags []string) SparseVector {
	counts := make(map[int]float64)
	for _, tag := range tags {
		if idx, ok := b.index[tag]; ok {
			counts[idx] = 1
		}
	}
	return sparseFromCounts(counts, len(b.Classes))
}

// NewBinarizer creates a binarizer from a fitted class vocabulary.
func NewBinarizer(classes []string) (*Binarizer, error) {
	b := &Binarizer{Classes: classes}
	if err := b.init(); err != nil {
		return nil, err
	}
	return b, nil
}
