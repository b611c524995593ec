package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
)

// CreateRating stores a user's rating of a recipe. Rating the same recipe
// again replaces the earlier stars. Stars are stored as given; the 1..5 range
// is enforced by the HTTP layer.
func (s *Cookbook) CreateRating(ctx context.Context, rating db.Rating) (*db.Rating, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, "recipe", &db.Recipe{}, "recipe_id = ?", rating.RecipeID); err != nil {
			return err
		}
		if err := mustExist(tx, "user", &db.User{}, "user_id = ?", rating.UserID); err != nil {
			return err
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stars"}),
		}).Create(&rating)
		return translate(res.Error, "create rating")
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (s *Cookbook) GetRating(ctx context.Context, recipeID uuid.UUID, userID string) (*db.Rating, error) {
	rating := db.Rating{}
	if err := s.db.WithContext(ctx).First(&rating, "recipe_id = ? AND user_id = ?", recipeID, userID).Error; err != nil {
		return nil, translate(err, "rating")
	}
	return &rating, nil
}

func (s *Cookbook) ListRatings(ctx context.Context, page Page) (*Paged[db.Rating], error) {
	return paginate[db.Rating](ctx, s.db, page, "recipe_id, user_id")
}

func (s *Cookbook) UpdateRating(ctx context.Context, recipeID uuid.UUID, userID string, stars int) (*db.Rating, error) {
	current := db.Rating{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "recipe_id = ? AND user_id = ?", recipeID, userID).Error; err != nil {
			return translate(err, "rating")
		}
		current.Stars = stars
		res := tx.Model(&db.Rating{}).Where("recipe_id = ? AND user_id = ?", recipeID, userID).Update("stars", stars)
		return translate(res.Error, "update rating")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

func (s *Cookbook) DeleteRating(ctx context.Context, recipeID uuid.UUID, userID string) (*db.Rating, error) {
	current := db.Rating{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "recipe_id = ? AND user_id = ?", recipeID, userID).Error; err != nil {
			return translate(err, "rating")
		}
		return translate(tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).Delete(&db.Rating{}).Error, "delete rating")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}
