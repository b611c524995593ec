package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
)

func (s *Cookbook) CreateIngredient(ctx context.Context, name string) (*db.Ingredient, error) {
	ingredient := db.Ingredient{IngredientID: uuid.New(), Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &db.Ingredient{}, "name = ?", name)
		if err != nil {
			return errors.Wrap(err, "check ingredient")
		}
		if taken {
			return errors.Wrapf(ErrConflict, "ingredient %q", name)
		}
		return translate(tx.Create(&ingredient).Error, "create ingredient")
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (s *Cookbook) GetIngredient(ctx context.Context, ingredientID uuid.UUID) (*db.Ingredient, error) {
	ingredient := db.Ingredient{}
	if err := s.db.WithContext(ctx).First(&ingredient, "ingredient_id = ?", ingredientID).Error; err != nil {
		return nil, translate(err, "ingredient")
	}
	return &ingredient, nil
}

func (s *Cookbook) ListIngredients(ctx context.Context, page Page) (*Paged[db.Ingredient], error) {
	return paginate[db.Ingredient](ctx, s.db, page, "name")
}

func (s *Cookbook) UpdateIngredient(ctx context.Context, ingredientID uuid.UUID, name string) (*db.Ingredient, error) {
	current := db.Ingredient{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "ingredient_id = ?", ingredientID).Error; err != nil {
			return translate(err, "ingredient")
		}

		taken, err := exists(tx, &db.Ingredient{}, "name = ? AND ingredient_id <> ?", name, ingredientID)
		if err != nil {
			return errors.Wrap(err, "check ingredient")
		}
		if taken {
			return errors.Wrapf(ErrConflict, "ingredient %q", name)
		}

		current.Name = name
		res := tx.Model(&db.Ingredient{}).Where("ingredient_id = ?", ingredientID).Update("name", name)
		return translate(res.Error, "update ingredient")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

// DeleteIngredient removes the ingredient and every recipe link to it.
func (s *Cookbook) DeleteIngredient(ctx context.Context, ingredientID uuid.UUID) (*db.Ingredient, error) {
	current := db.Ingredient{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "ingredient_id = ?", ingredientID).Error; err != nil {
			return translate(err, "ingredient")
		}
		if err := tx.Where("ingredient_id = ?", ingredientID).Delete(&db.RecipeIngredient{}).Error; err != nil {
			return errors.Wrap(err, "delete ingredient links")
		}
		return translate(tx.Where("ingredient_id = ?", ingredientID).Delete(&db.Ingredient{}).Error, "delete ingredient")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}
