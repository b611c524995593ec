package models

import (
	"github.com/google/uuid"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
)

type UserReq struct {
	UserID    string `json:"userId" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type UserUpdateReq struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type RecipeReq struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	CookingTime     int    `json:"cookingTime" validate:"gte=0"`
	PreparationTime int    `json:"preparationTime" validate:"gte=0"`
	ImagePath       string `json:"imagePath"`
	UserID          string `json:"userId" validate:"required"`
}

type IngredientReq struct {
	Name string `json:"name" validate:"required"`
}

type CategoryReq struct {
	Name string `json:"name" validate:"required"`
}

type StepReq struct {
	RecipeID    uuid.UUID `json:"recipeId" validate:"required"`
	StepNumber  int       `json:"stepNumber" validate:"gte=1"`
	Description string    `json:"description" validate:"required"`
}

type RatingReq struct {
	RecipeID uuid.UUID `json:"recipeId" validate:"required"`
	UserID   string    `json:"userId" validate:"required"`
	Stars    int       `json:"stars" validate:"min=1,max=5"`
}

type RatingStarsReq struct {
	Stars int `json:"stars" validate:"min=1,max=5"`
}

type RecipeIngredientReq struct {
	Amount int    `json:"amount" validate:"gte=0"`
	Unit   string `json:"unit" validate:"required,oneof=TL EL g Stk Kopf Prise ml Zweig"`
}

type UserResp struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type RecipeResp struct {
	RecipeID        uuid.UUID `json:"recipeId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CookingTime     int       `json:"cookingTime"`
	PreparationTime int       `json:"preparationTime"`
	ImagePath       string    `json:"imagePath"`
	UserID          string    `json:"userId"`
}

// PublicRecipeResp is a recipe enriched with its rating summary and the
// owner's display name.
type PublicRecipeResp struct {
	RecipeResp
	Stars        float64 `json:"stars"`
	RatingAmount int64   `json:"ratingAmount"`
	UserName     string  `json:"userName"`
}

type IngredientResp struct {
	IngredientID uuid.UUID `json:"ingredientId"`
	Name         string    `json:"name"`
}

type RecipeIngredientResp struct {
	RecipeID     uuid.UUID `json:"recipeId"`
	IngredientID uuid.UUID `json:"ingredientId"`
	Name         string    `json:"name,omitempty"`
	Amount       int       `json:"amount"`
	Unit         db.Unit   `json:"unit"`
}

type StepResp struct {
	StepID      uuid.UUID `json:"stepId"`
	RecipeID    uuid.UUID `json:"recipeId"`
	StepNumber  int       `json:"stepNumber"`
	Description string    `json:"description"`
}

type CategoryResp struct {
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
}

type RecipeCategoryResp struct {
	RecipeID   uuid.UUID `json:"recipeId"`
	CategoryID uuid.UUID `json:"categoryId"`
}

type RatingResp struct {
	RecipeID uuid.UUID `json:"recipeId"`
	UserID   string    `json:"userId"`
	Stars    int       `json:"stars"`
}

type PageResp[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int64 `json:"pages"`
}
