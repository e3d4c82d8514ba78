package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tasteai/v2/internal/domain/recipe"
	"github.com/tasteai/v2/internal/ports/outbound"
	"gorm.io/gorm"
)

// ErrRecipeNotFound indicates the requested recipe does not exist
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe with its ingredients
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := recipeToModel(rec)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update replaces a recipe and its ingredient rows
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	model := recipeToModel(rec)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&RecipeModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"name":        model.Name,
				"description": model.Description,
				"updated_at":  model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecipeNotFound
		}

		if err := tx.Delete(&RecipeIngredientModel{}, "recipe_id = ?", model.ID).Error; err != nil {
			return err
		}
		if len(model.Ingredients) > 0 {
			if err := tx.Create(&model.Ingredients).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a recipe by ID
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&RecipeIngredientModel{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&RecipeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return nil
	})
}

// FindByID finds a recipe by ID, including its ingredients.
// A missing recipe yields (nil, nil).
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return modelToRecipe(&model), nil
}

// FindByAuthorID returns all recipes created by the given author
func (r *RecipeRepository) FindByAuthorID(ctx context.Context, authorID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = modelToRecipe(&models[i])
	}
	return recipes, nil
}

func recipeToModel(rec *recipe.Recipe) *RecipeModel {
	ingredients := make([]RecipeIngredientModel, len(rec.Ingredients()))
	for i, ing := range rec.Ingredients() {
		ingredients[i] = RecipeIngredientModel{
			ID:       ing.ID,
			RecipeID: rec.ID(),
			Name:     ing.Name,
			Position: i,
		}
	}

	return &RecipeModel{
		ID:          rec.ID(),
		AuthorID:    rec.AuthorID(),
		Name:        rec.Name(),
		Description: rec.Description(),
		CreatedAt:   rec.CreatedAt(),
		UpdatedAt:   rec.UpdatedAt(),
		Ingredients: ingredients,
	}
}

func modelToRecipe(m *RecipeModel) *recipe.Recipe {
	ingredients := make([]recipe.Ingredient, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ingredients[i] = recipe.Ingredient{ID: ing.ID, Name: ing.Name}
	}

	return recipe.Reconstruct(
		m.ID,
		m.AuthorID,
		m.Name,
		m.Description,
		ingredients,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
