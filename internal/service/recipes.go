package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
)

// CreateRecipe stores a recipe under a freshly generated id. The owner must exist.
func (s *Cookbook) CreateRecipe(ctx context.Context, recipe db.Recipe) (*db.Recipe, error) {
	recipe.RecipeID = uuid.New()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, "owner", &db.User{}, "user_id = ?", recipe.UserID); err != nil {
			return err
		}
		return translate(tx.Create(&recipe).Error, "create recipe")
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *Cookbook) GetRecipe(ctx context.Context, recipeID uuid.UUID) (*db.Recipe, error) {
	recipe := db.Recipe{}
	if err := s.db.WithContext(ctx).First(&recipe, "recipe_id = ?", recipeID).Error; err != nil {
		return nil, translate(err, "recipe")
	}
	return &recipe, nil
}

func (s *Cookbook) ListRecipes(ctx context.Context, page Page) (*Paged[db.Recipe], error) {
	return paginate[db.Recipe](ctx, s.db, page, "title, recipe_id")
}

// UpdateRecipe overwrites every mutable field, the owner included.
func (s *Cookbook) UpdateRecipe(ctx context.Context, recipeID uuid.UUID, recipe db.Recipe) (*db.Recipe, error) {
	current := db.Recipe{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "recipe_id = ?", recipeID).Error; err != nil {
			return translate(err, "recipe")
		}
		if recipe.UserID != current.UserID {
			if err := mustExist(tx, "owner", &db.User{}, "user_id = ?", recipe.UserID); err != nil {
				return err
			}
		}

		recipe.RecipeID = current.RecipeID
		current = recipe

		res := tx.Model(&db.Recipe{}).Where("recipe_id = ?", recipeID).Updates(map[string]interface{}{
			"title":            recipe.Title,
			"description":      recipe.Description,
			"cooking_time":     recipe.CookingTime,
			"preparation_time": recipe.PreparationTime,
			"image_path":       recipe.ImagePath,
			"user_id":          recipe.UserID,
		})
		return translate(res.Error, "update recipe")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

// SetRecipeImage replaces only the image reference of a recipe.
func (s *Cookbook) SetRecipeImage(ctx context.Context, recipeID uuid.UUID, imagePath string) (*db.Recipe, error) {
	current := db.Recipe{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "recipe_id = ?", recipeID).Error; err != nil {
			return translate(err, "recipe")
		}
		current.ImagePath = imagePath
		res := tx.Model(&db.Recipe{}).Where("recipe_id = ?", recipeID).Update("image_path", imagePath)
		return translate(res.Error, "update recipe image")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

// DeleteRecipe removes a recipe together with its steps, ratings and
// category/ingredient links.
func (s *Cookbook) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) (*db.Recipe, error) {
	current := db.Recipe{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "recipe_id = ?", recipeID).Error; err != nil {
			return translate(err, "recipe")
		}

		owned := []interface{}{
			&db.PreparationStep{},
			&db.Rating{},
			&db.RecipeIngredient{},
			&db.RecipeCategory{},
		}
		for _, model := range owned {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(model).Error; err != nil {
				return errors.Wrap(err, "delete recipe children")
			}
		}

		return translate(tx.Where("recipe_id = ?", recipeID).Delete(&db.Recipe{}).Error, "delete recipe")
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("recipe deleted", "recipeId", recipeID, "userId", current.UserID)
	return &current, nil
}

func (s *Cookbook) RecipeIngredients(ctx context.Context, recipeID uuid.UUID) ([]db.RecipeIngredientRow, error) {
	conn := s.db.WithContext(ctx)
	if err := mustExist(conn, "recipe", &db.Recipe{}, "recipe_id = ?", recipeID); err != nil {
		return nil, err
	}

	rows := make([]db.RecipeIngredientRow, 0)
	res := conn.Table("recipe_ingredients ri").
		Select("ri.recipe_id, ri.ingredient_id, ri.amount, ri.unit, i.name").
		Joins("JOIN ingredients i ON i.ingredient_id = ri.ingredient_id").
		Where("ri.recipe_id = ?", recipeID).
		Order("i.name").
		Scan(&rows)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan recipe ingredients")
	}
	return rows, nil
}

// RecipeSteps returns the steps of a recipe in display order.
func (s *Cookbook) RecipeSteps(ctx context.Context, recipeID uuid.UUID) ([]db.PreparationStep, error) {
	conn := s.db.WithContext(ctx)
	if err := mustExist(conn, "recipe", &db.Recipe{}, "recipe_id = ?", recipeID); err != nil {
		return nil, err
	}

	steps := make([]db.PreparationStep, 0)
	if err := conn.Where("recipe_id = ?", recipeID).Order("step_number, step_id").Find(&steps).Error; err != nil {
		return nil, errors.Wrap(err, "find steps")
	}
	return steps, nil
}

func (s *Cookbook) RecipeCategories(ctx context.Context, recipeID uuid.UUID) ([]db.Category, error) {
	conn := s.db.WithContext(ctx)
	if err := mustExist(conn, "recipe", &db.Recipe{}, "recipe_id = ?", recipeID); err != nil {
		return nil, err
	}

	categories := make([]db.Category, 0)
	res := conn.Model(&db.Category{}).
		Select("categories.*").
		Joins("JOIN recipe_categories rc ON rc.category_id = categories.category_id").
		Where("rc.recipe_id = ?", recipeID).
		Order("categories.name").
		Find(&categories)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "find categories")
	}
	return categories, nil
}

func (s *Cookbook) RecipeRatings(ctx context.Context, recipeID uuid.UUID) ([]db.Rating, error) {
	conn := s.db.WithContext(ctx)
	if err := mustExist(conn, "recipe", &db.Recipe{}, "recipe_id = ?", recipeID); err != nil {
		return nil, err
	}

	ratings := make([]db.Rating, 0)
	if err := conn.Where("recipe_id = ?", recipeID).Order("user_id").Find(&ratings).Error; err != nil {
		return nil, errors.Wrap(err, "find ratings")
	}
	return ratings, nil
}

func (s *Cookbook) RecipeOwner(ctx context.Context, recipeID uuid.UUID) (*db.User, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, recipe.UserID)
}

func (s *Cookbook) LinkRecipeCategory(ctx context.Context, recipeID, categoryID uuid.UUID) (*db.RecipeCategory, error) {
	link := db.RecipeCategory{RecipeID: recipeID, CategoryID: categoryID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, "recipe", &db.Recipe{}, "recipe_id = ?", recipeID); err != nil {
			return err
		}
		if err := mustExist(tx, "category", &db.Category{}, "category_id = ?", categoryID); err != nil {
			return err
		}

		linked, err := exists(tx, &db.RecipeCategory{}, "recipe_id = ? AND category_id = ?", recipeID, categoryID)
		if err != nil {
			return errors.Wrap(err, "check link")
		}
		if linked {
			return errors.Wrap(ErrConflict, "recipe category link")
		}
		return translate(tx.Create(&link).Error, "create recipe category link")
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *Cookbook) UnlinkRecipeCategory(ctx context.Context, recipeID, categoryID uuid.UUID) (*db.RecipeCategory, error) {
	link := db.RecipeCategory{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&link, "recipe_id = ? AND category_id = ?", recipeID, categoryID).Error; err != nil {
			return translate(err, "recipe category link")
		}
		res := tx.Where("recipe_id = ? AND category_id = ?", recipeID, categoryID).Delete(&db.RecipeCategory{})
		return translate(res.Error, "delete recipe category link")
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *Cookbook) LinkRecipeIngredient(ctx context.Context, recipeID, ingredientID uuid.UUID, amount int, unit db.Unit) (*db.RecipeIngredient, error) {
	if !unit.Valid() {
		return nil, errors.Wrapf(ErrInvalid, "unit %q", unit)
	}

	link := db.RecipeIngredient{RecipeID: recipeID, IngredientID: ingredientID, Amount: amount, Unit: unit}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, "recipe", &db.Recipe{}, "recipe_id = ?", recipeID); err != nil {
			return err
		}
		if err := mustExist(tx, "ingredient", &db.Ingredient{}, "ingredient_id = ?", ingredientID); err != nil {
			return err
		}

		linked, err := exists(tx, &db.RecipeIngredient{}, "recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID)
		if err != nil {
			return errors.Wrap(err, "check link")
		}
		if linked {
			return errors.Wrap(ErrConflict, "recipe ingredient link")
		}
		return translate(tx.Create(&link).Error, "create recipe ingredient link")
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *Cookbook) UnlinkRecipeIngredient(ctx context.Context, recipeID, ingredientID uuid.UUID) (*db.RecipeIngredient, error) {
	link := db.RecipeIngredient{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&link, "recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).Error; err != nil {
			return translate(err, "recipe ingredient link")
		}
		res := tx.Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).Delete(&db.RecipeIngredient{})
		return translate(res.Error, "delete recipe ingredient link")
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}
