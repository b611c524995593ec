package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
)

func (s *Cookbook) CreateStep(ctx context.Context, step db.PreparationStep) (*db.PreparationStep, error) {
	step.StepID = uuid.New()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, "recipe", &db.Recipe{}, "recipe_id = ?", step.RecipeID); err != nil {
			return err
		}
		return translate(tx.Create(&step).Error, "create step")
	})
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (s *Cookbook) GetStep(ctx context.Context, stepID uuid.UUID) (*db.PreparationStep, error) {
	step := db.PreparationStep{}
	if err := s.db.WithContext(ctx).First(&step, "step_id = ?", stepID).Error; err != nil {
		return nil, translate(err, "step")
	}
	return &step, nil
}

func (s *Cookbook) ListSteps(ctx context.Context, page Page) (*Paged[db.PreparationStep], error) {
	return paginate[db.PreparationStep](ctx, s.db, page, "recipe_id, step_number, step_id")
}

// UpdateStep replaces number, description and recipe of a step.
func (s *Cookbook) UpdateStep(ctx context.Context, stepID uuid.UUID, step db.PreparationStep) (*db.PreparationStep, error) {
	current := db.PreparationStep{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "step_id = ?", stepID).Error; err != nil {
			return translate(err, "step")
		}
		if step.RecipeID != current.RecipeID {
			if err := mustExist(tx, "recipe", &db.Recipe{}, "recipe_id = ?", step.RecipeID); err != nil {
				return err
			}
		}

		step.StepID = current.StepID
		current = step

		res := tx.Model(&db.PreparationStep{}).Where("step_id = ?", stepID).Updates(map[string]interface{}{
			"recipe_id":   step.RecipeID,
			"step_number": step.StepNumber,
			"description": step.Description,
		})
		return translate(res.Error, "update step")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

func (s *Cookbook) DeleteStep(ctx context.Context, stepID uuid.UUID) (*db.PreparationStep, error) {
	current := db.PreparationStep{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "step_id = ?", stepID).Error; err != nil {
			return translate(err, "step")
		}
		return translate(tx.Where("step_id = ?", stepID).Delete(&db.PreparationStep{}).Error, "delete step")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}
