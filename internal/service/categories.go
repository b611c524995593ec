package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
)

func (s *Cookbook) CreateCategory(ctx context.Context, name string) (*db.Category, error) {
	category := db.Category{CategoryID: uuid.New(), Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &db.Category{}, "name = ?", name)
		if err != nil {
			return errors.Wrap(err, "check category")
		}
		if taken {
			return errors.Wrapf(ErrConflict, "category %q", name)
		}
		return translate(tx.Create(&category).Error, "create category")
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Cookbook) GetCategory(ctx context.Context, categoryID uuid.UUID) (*db.Category, error) {
	category := db.Category{}
	if err := s.db.WithContext(ctx).First(&category, "category_id = ?", categoryID).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &category, nil
}

func (s *Cookbook) ListCategories(ctx context.Context, page Page) (*Paged[db.Category], error) {
	return paginate[db.Category](ctx, s.db, page, "name")
}

func (s *Cookbook) UpdateCategory(ctx context.Context, categoryID uuid.UUID, name string) (*db.Category, error) {
	current := db.Category{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "category_id = ?", categoryID).Error; err != nil {
			return translate(err, "category")
		}

		taken, err := exists(tx, &db.Category{}, "name = ? AND category_id <> ?", name, categoryID)
		if err != nil {
			return errors.Wrap(err, "check category")
		}
		if taken {
			return errors.Wrapf(ErrConflict, "category %q", name)
		}

		current.Name = name
		res := tx.Model(&db.Category{}).Where("category_id = ?", categoryID).Update("name", name)
		return translate(res.Error, "update category")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

// DeleteCategory removes the category and unlinks it from all recipes.
func (s *Cookbook) DeleteCategory(ctx context.Context, categoryID uuid.UUID) (*db.Category, error) {
	current := db.Category{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "category_id = ?", categoryID).Error; err != nil {
			return translate(err, "category")
		}
		if err := tx.Where("category_id = ?", categoryID).Delete(&db.RecipeCategory{}).Error; err != nil {
			return errors.Wrap(err, "delete category links")
		}
		return translate(tx.Where("category_id = ?", categoryID).Delete(&db.Category{}).Error, "delete category")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

// CategoryRecipes lists the recipes linked to a category.
func (s *Cookbook) CategoryRecipes(ctx context.Context, categoryID uuid.UUID) ([]db.Recipe, error) {
	conn := s.db.WithContext(ctx)
	if err := mustExist(conn, "category", &db.Category{}, "category_id = ?", categoryID); err != nil {
		return nil, err
	}

	recipes := make([]db.Recipe, 0)
	res := conn.Model(&db.Recipe{}).
		Select("recipes.*").
		Joins("JOIN recipe_categories rc ON rc.recipe_id = recipes.recipe_id").
		Where("rc.category_id = ?", categoryID).
		Order("recipes.title, recipes.recipe_id").
		Find(&recipes)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "find recipes")
	}
	return recipes, nil
}
