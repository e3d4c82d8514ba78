package inbound

import (
	"context"

	"github.com/google/uuid"
)

// RecipeService defines the use cases for user-authored recipe management.
// All operations are scoped to the authenticated owner.
type RecipeService interface {
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error
	GetRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]RecipeDTO, error)
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	AuthorID    uuid.UUID
	Name        string
	Description string
	Ingredients []string
}

// UpdateRecipeCommand contains data for updating a recipe. The ingredient
// list replaces the stored one wholesale.
type UpdateRecipeCommand struct {
	RecipeID    uuid.UUID
	UserID      uuid.UUID
	Name        *string
	Description *string
	Ingredients *[]string
}

// RecipeDTO is the data transfer object for user-authored recipes
type RecipeDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Ingredients []IngredientDTO `json:"ingredients"`
}

// IngredientDTO for ingredient data
type IngredientDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
