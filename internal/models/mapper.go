package models

import (
	"strings"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/service"
)

func NewUserResp(u *db.User) UserResp {
	return UserResp{
		UserID:    u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func NewRecipeResp(r *db.Recipe) RecipeResp {
	return RecipeResp{
		RecipeID:        r.RecipeID,
		Title:           r.Title,
		Description:     r.Description,
		CookingTime:     r.CookingTime,
		PreparationTime: r.PreparationTime,
		ImagePath:       r.ImagePath,
		UserID:          r.UserID,
	}
}

func NewPublicRecipeResp(s *db.RecipeSummary) PublicRecipeResp {
	return PublicRecipeResp{
		RecipeResp: RecipeResp{
			RecipeID:        s.RecipeID,
			Title:           s.Title,
			Description:     s.Description,
			CookingTime:     s.CookingTime,
			PreparationTime: s.PreparationTime,
			ImagePath:       s.ImagePath,
			UserID:          s.UserID,
		},
		Stars:        s.Stars,
		RatingAmount: s.RatingAmount,
		UserName:     UserName(s.FirstName, s.LastName),
	}
}

// UserName is the display name shown next to a public recipe.
func UserName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}

func NewIngredientResp(i *db.Ingredient) IngredientResp {
	return IngredientResp{
		IngredientID: i.IngredientID,
		Name:         i.Name,
	}
}

func NewRecipeIngredientResp(ri *db.RecipeIngredient) RecipeIngredientResp {
	return RecipeIngredientResp{
		RecipeID:     ri.RecipeID,
		IngredientID: ri.IngredientID,
		Amount:       ri.Amount,
		Unit:         ri.Unit,
	}
}

func NewRecipeIngredientRowResp(row *db.RecipeIngredientRow) RecipeIngredientResp {
	return RecipeIngredientResp{
		RecipeID:     row.RecipeID,
		IngredientID: row.IngredientID,
		Name:         row.Name,
		Amount:       row.Amount,
		Unit:         row.Unit,
	}
}

func NewStepResp(s *db.PreparationStep) StepResp {
	return StepResp{
		StepID:      s.StepID,
		RecipeID:    s.RecipeID,
		StepNumber:  s.StepNumber,
		Description: s.Description,
	}
}

func NewCategoryResp(c *db.Category) CategoryResp {
	return CategoryResp{
		CategoryID: c.CategoryID,
		Name:       c.Name,
	}
}

func NewRecipeCategoryResp(rc *db.RecipeCategory) RecipeCategoryResp {
	return RecipeCategoryResp{
		RecipeID:   rc.RecipeID,
		CategoryID: rc.CategoryID,
	}
}

func NewRatingResp(r *db.Rating) RatingResp {
	return RatingResp{
		RecipeID: r.RecipeID,
		UserID:   r.UserID,
		Stars:    r.Stars,
	}
}

// MapSlice converts every element with f. The result is never nil.
func MapSlice[T, R any](in []T, f func(*T) R) []R {
	out := make([]R, len(in))
	for i := range in {
		out[i] = f(&in[i])
	}
	return out
}

func NewPageResp[T, R any](p *service.Paged[T], f func(*T) R) PageResp[R] {
	resp := PageResp[R]{
		Items: MapSlice(p.Items, f),
		Total: p.Total,
		Page:  p.Page.Number,
		Size:  p.Page.Size,
		Pages: 1,
	}
	if p.Page.Size > 0 {
		resp.Pages = (p.Total + int64(p.Page.Size) - 1) / int64(p.Page.Size)
	}
	return resp
}
