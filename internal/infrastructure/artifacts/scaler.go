package artifacts

import (
	"fmt"

	"github.com/tasteai/v2/internal/domain/recommendation"
)

// Scaler is a fitted standard scaler: per-feature mean and scale learned at
// training time. It normalizes a raw nutrient vector feature by feature.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// init validates the fitted parameters.
func (s *Scaler) init() error {
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler: mean has %d features, scale has %d", len(s.Mean), len(s.Scale))
	}
	if len(s.Mean) != recommendation.NutrientFeatureCount {
		return fmt.Errorf("scaler: fitted with %d features, want %d", len(s.Mean), recommendation.NutrientFeatureCount)
	}
	return nil
}

// Dim returns the number of features the scaler was fitted with.
func (s *Scaler) Dim() int {
	return len(s.Mean)
}

// Transform maps a raw feature vector to (x - mean) / scale. A zero scale
// component leaves the centered value untouched, matching how the training
// pipeline handles constant features.
func (s *Scaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) {
		return nil, recommendation.ErrDimensionMismatch
	}
	out := make([]float64, len(features))
	for i, x := range features {
		centered := x - s.Mean[i]
		if s.Scale[i] != 0 {
			centered /= s.Scale[i]
		}
		out[i] = centered
	}
	return out, nil
}

// NewScaler creates a scaler from fitted per-feature parameters.
func NewScaler(mean, scale []float64) (*Scaler, error) {
	s := &Scaler{Mean: mean, Scale: scale}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}
