// Package recipe provides the application layer for user-authored recipe
// management. This implements the use cases defined in the inbound ports.
package recipe

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasteai/v2/internal/domain/recipe"
	"github.com/tasteai/v2/internal/ports/inbound"
	"github.com/tasteai/v2/internal/ports/outbound"
	"github.com/tasteai/v2/pkg/errors"
	"go.uber.org/zap"
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(recipeRepo outbound.RecipeRepository, logger *zap.Logger) inbound.RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		logger:     logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe owned by the author
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating recipe",
		zap.String("name", cmd.Name),
		zap.String("author_id", cmd.AuthorID.String()),
	)

	entity, err := recipe.NewRecipe(cmd.Name, cmd.Description, cmd.AuthorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	for _, name := range cmd.Ingredients {
		if err := entity.AddIngredient(name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	return entityToDTO(entity), nil
}

// UpdateRecipe updates a recipe the user owns. A provided ingredient list
// replaces the stored one wholesale.
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.loadOwned(ctx, cmd.RecipeID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	name := entity.Name()
	description := entity.Description()
	if cmd.Name != nil {
		name = *cmd.Name
	}
	if cmd.Description != nil {
		description = *cmd.Description
	}
	if err := entity.Rename(name, description); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Ingredients != nil {
		if err := entity.ReplaceIngredients(*cmd.Ingredients); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("update recipe", err)
	}

	s.logger.Info("Recipe updated", zap.String("recipe_id", cmd.RecipeID.String()))
	return entityToDTO(entity), nil
}

// DeleteRecipe deletes a recipe the user owns
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, recipeID, userID); err != nil {
		return err
	}
	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}
	s.logger.Info("Recipe deleted", zap.String("recipe_id", recipeID.String()))
	return nil
}

// GetRecipe retrieves a recipe the user owns
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	return entityToDTO(entity), nil
}

// ListRecipes retrieves all recipes owned by the user
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]inbound.RecipeDTO, error) {
	entities, err := s.recipeRepo.FindByAuthorID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}
	dtos := make([]inbound.RecipeDTO, len(entities))
	for i, entity := range entities {
		dtos[i] = *entityToDTO(entity)
	}
	return dtos, nil
}

// loadOwned fetches a recipe and enforces ownership
func (s *RecipeService) loadOwned(ctx context.Context, recipeID, userID uuid.UUID) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if entity == nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}
	if !entity.IsOwnedBy(userID) {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}
	return entity, nil
}

// entityToDTO converts a domain entity to a DTO
func entityToDTO(entity *recipe.Recipe) *inbound.RecipeDTO {
	ingredients := make([]inbound.IngredientDTO, len(entity.Ingredients()))
	for i, ing := range entity.Ingredients() {
		ingredients[i] = inbound.IngredientDTO{ID: ing.ID, Name: ing.Name}
	}
	return &inbound.RecipeDTO{
		ID:          entity.ID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		Ingredients: ingredients,
	}
}
