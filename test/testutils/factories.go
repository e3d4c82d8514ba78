// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/tasteai/v2/internal/domain/recommendation"
	"github.com/tasteai/v2/internal/domain/user"
)

// RecordFactory builds recipe records for recommendation tests
type RecordFactory struct {
	faker *gofakeit.Faker
}

// NewRecordFactory creates a factory with a seeded faker so generated data
// is reproducible across runs.
func NewRecordFactory(seed int64) *RecordFactory {
	return &RecordFactory{faker: gofakeit.New(seed)}
}

// Record builds a single record with the given number of ingredients
func (f *RecordFactory) Record(ingredientCount int) recommendation.RecipeRecord {
	ingredients := make([]string, ingredientCount)
	for i := range ingredients {
		ingredients[i] = strings.ToLower(f.faker.Vegetable())
	}

	return recommendation.RecipeRecord{
		Name:        f.faker.Dinner(),
		Ingredients: strings.Join(ingredients, ", "),
		Palette:     strings.ToLower(f.faker.RandomString([]string{"spicy", "sweet", "savory", "sour", "bitter"})),
	}
}

// Dataset builds a dataset of n records
func (f *RecordFactory) Dataset(n, ingredientCount int) *recommendation.Dataset {
	records := make([]recommendation.RecipeRecord, n)
	for i := range records {
		records[i] = f.Record(ingredientCount)
	}
	return recommendation.NewDataset(records)
}

// UserFactory builds user entities for tests
type UserFactory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewUserFactory creates a factory with a seeded faker
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{faker: gofakeit.New(seed)}
}

// User builds a valid user with a unique email
func (f *UserFactory) User() (*user.User, error) {
	f.seq++
	email := fmt.Sprintf("user%d-%s@example.com", f.seq, uuid.NewString()[:8])
	return user.NewUser(email, f.faker.FirstName(), f.faker.LastName(), "password123")
}
