package recommendation

// NutrientFeatureCount is the number of numeric features the calorie engine
// encodes. The order of NutrientQuery.Features matches the order the scaler
// was fitted with and must not change.
const NutrientFeatureCount = 7

// NutrientQuery is the input to the calorie engine. Missing numeric fields
// default to zero; that is the caller's contract, not validated here.
type NutrientQuery struct {
	Calories    float64
	Fat         float64
	Carbs       float64
	Protein     float64
	Cholesterol float64
	Sodium      float64
	Fiber       float64
	Ingredients string
}

// Features returns the numeric fields in the fixed training order
// [calories, fat, carbs, protein, cholesterol, sodium, fiber].
func (q NutrientQuery) Features() [NutrientFeatureCount]float64 {
	return [NutrientFeatureCount]float64{
		q.Calories,
		q.Fat,
		q.Carbs,
		q.Protein,
		q.Cholesterol,
		q.Sodium,
		q.Fiber,
	}
}

// PaletteQuery is the input to the palette engine.
type PaletteQuery struct {
	Ingredients []string
	Palette     []string
	TopK        int
}
