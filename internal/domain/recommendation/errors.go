package recommendation

import "errors"

// Domain errors for the recommendation engines

var (
	// Query validation errors
	ErrEmptyIngredients = errors.New("ingredient list is empty after normalization")
	ErrEmptyPalette     = errors.New("palette list is empty after normalization")
	ErrInvalidTopK      = errors.New("top_k must be greater than 0")

	// Artifact errors
	ErrRowMisalignment   = errors.New("artifact row count does not match dataset row count")
	ErrDimensionMismatch = errors.New("query vector dimension does not match fitted artifact")
)
