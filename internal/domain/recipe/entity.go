// Package recipe contains the domain model for user-authored recipes.
package recipe

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipe represents a recipe a user created and owns. These live alongside
// the read-only reference dataset the recommendation engines serve from, but
// are a separate concern: users may store and edit their own recipes freely.
type Recipe struct {
	id          uuid.UUID
	authorID    uuid.UUID
	name        string
	description string
	ingredients []Ingredient
	createdAt   time.Time
	updatedAt   time.Time
}

// Ingredient is a named ingredient of a user-authored recipe.
type Ingredient struct {
	ID   uuid.UUID
	Name string
}

// NewRecipe creates a new recipe with validation.
func NewRecipe(name, description string, authorID uuid.UUID) (*Recipe, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Recipe{
		id:          uuid.New(),
		authorID:    authorID,
		name:        name,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a recipe from persisted state. Used by repositories only.
func Reconstruct(
	id, authorID uuid.UUID,
	name, description string,
	ingredients []Ingredient,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:          id,
		authorID:    authorID,
		name:        name,
		description: description,
		ingredients: ingredients,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the recipe's unique identifier.
func (r *Recipe) ID() uuid.UUID { return r.id }

// AuthorID returns the owning user's identifier.
func (r *Recipe) AuthorID() uuid.UUID { return r.authorID }

// Name returns the recipe name.
func (r *Recipe) Name() string { return r.name }

// Description returns the recipe description.
func (r *Recipe) Description() string { return r.description }

// Ingredients returns the recipe's ingredients in insertion order.
func (r *Recipe) Ingredients() []Ingredient { return r.ingredients }

// CreatedAt returns when the recipe was created.
func (r *Recipe) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns when the recipe was last updated.
func (r *Recipe) UpdatedAt() time.Time { return r.updatedAt }

// Rename updates name and description with validation.
func (r *Recipe) Rename(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}
	r.name = name
	r.description = description
	r.updatedAt = time.Now()
	return nil
}

// AddIngredient appends an ingredient by name.
func (r *Recipe) AddIngredient(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyIngredient
	}
	r.ingredients = append(r.ingredients, Ingredient{ID: uuid.New(), Name: name})
	r.updatedAt = time.Now()
	return nil
}

// ReplaceIngredients swaps the full ingredient list, mirroring how recipe
// updates arrive from clients: the new list replaces the old wholesale.
func (r *Recipe) ReplaceIngredients(names []string) error {
	replacement := make([]Ingredient, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return ErrEmptyIngredient
		}
		replacement = append(replacement, Ingredient{ID: uuid.New(), Name: name})
	}
	r.ingredients = replacement
	r.updatedAt = time.Now()
	return nil
}

// IsOwnedBy reports whether the given user owns this recipe.
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.authorID == userID
}

// Domain errors for recipe operations
var (
	ErrNameTooShort    = errors.New("recipe name must not be empty")
	ErrNameTooLong     = errors.New("recipe name must not exceed 300 characters")
	ErrEmptyIngredient = errors.New("ingredient name must not be empty")
	ErrNotRecipeOwner  = errors.New("only the recipe owner can perform this action")
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameTooShort
	}
	if len(name) > 300 {
		return ErrNameTooLong
	}
	return nil
}
