package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
)

func (s *Cookbook) CreateUser(ctx context.Context, user db.User) (*db.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &db.User{}, "user_id = ? OR email = ?", user.UserID, user.Email)
		if err != nil {
			return errors.Wrap(err, "check user")
		}
		if taken {
			return errors.Wrap(ErrConflict, "user")
		}
		return translate(tx.Create(&user).Error, "create user")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Cookbook) GetUser(ctx context.Context, userID string) (*db.User, error) {
	user := db.User{}
	if err := s.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (s *Cookbook) ListUsers(ctx context.Context, page Page) (*Paged[db.User], error) {
	return paginate[db.User](ctx, s.db, page, "email")
}

// UpdateUser replaces email and names of an existing user.
func (s *Cookbook) UpdateUser(ctx context.Context, userID string, user db.User) (*db.User, error) {
	current := db.User{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "user_id = ?", userID).Error; err != nil {
			return translate(err, "user")
		}

		taken, err := exists(tx, &db.User{}, "email = ? AND user_id <> ?", user.Email, userID)
		if err != nil {
			return errors.Wrap(err, "check email")
		}
		if taken {
			return errors.Wrap(ErrConflict, "email")
		}

		current.Email = user.Email
		current.FirstName = user.FirstName
		current.LastName = user.LastName

		res := tx.Model(&db.User{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
			"email":      current.Email,
			"first_name": current.FirstName,
			"last_name":  current.LastName,
		})
		return translate(res.Error, "update user")
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

// DeleteUser removes a user and their ratings. Users that still own recipes
// cannot be deleted.
func (s *Cookbook) DeleteUser(ctx context.Context, userID string) (*db.User, error) {
	current := db.User{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, "user_id = ?", userID).Error; err != nil {
			return translate(err, "user")
		}

		owns, err := exists(tx, &db.Recipe{}, "user_id = ?", userID)
		if err != nil {
			return errors.Wrap(err, "check recipes")
		}
		if owns {
			return errors.Wrap(ErrConflict, "user still owns recipes")
		}

		if err := tx.Where("user_id = ?", userID).Delete(&db.Rating{}).Error; err != nil {
			return errors.Wrap(err, "delete ratings")
		}
		return translate(tx.Where("user_id = ?", userID).Delete(&db.User{}).Error, "delete user")
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user deleted", "userId", userID)
	return &current, nil
}

func (s *Cookbook) UserRecipes(ctx context.Context, userID string) ([]db.Recipe, error) {
	conn := s.db.WithContext(ctx)
	if err := mustExist(conn, "user", &db.User{}, "user_id = ?", userID); err != nil {
		return nil, err
	}

	recipes := make([]db.Recipe, 0)
	if err := conn.Where("user_id = ?", userID).Order("title, recipe_id").Find(&recipes).Error; err != nil {
		return nil, errors.Wrap(err, "find recipes")
	}
	return recipes, nil
}

func (s *Cookbook) UserRatings(ctx context.Context, userID string) ([]db.Rating, error) {
	conn := s.db.WithContext(ctx)
	if err := mustExist(conn, "user", &db.User{}, "user_id = ?", userID); err != nil {
		return nil, err
	}

	ratings := make([]db.Rating, 0)
	if err := conn.Where("user_id = ?", userID).Order("recipe_id").Find(&ratings).Error; err != nil {
		return nil, errors.Wrap(err, "find ratings")
	}
	return ratings, nil
}
