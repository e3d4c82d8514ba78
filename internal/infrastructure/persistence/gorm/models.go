// Package gorm provides GORM model definitions for the application
package gorm

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time

	// Relationships
	Recipes []RecipeModel `gorm:"foreignKey:AuthorID"`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	AuthorID    uuid.UUID `gorm:"type:char(36);index;not null"`
	Name        string    `gorm:"type:varchar(300);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	Ingredients []RecipeIngredientModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeIngredientModel represents a single ingredient line of a recipe
type RecipeIngredientModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID uuid.UUID `gorm:"type:char(36);index;not null"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Position int       `gorm:"not null"`
}

// TableName returns the table name for RecipeIngredientModel
func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}
