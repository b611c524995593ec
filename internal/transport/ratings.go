package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/models"
)

func (s *HTTPServer) RatingCreate(c echo.Context) error {
	req := models.RatingReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	rating, err := s.cookbook.CreateRating(c.Request().Context(), db.Rating{
		RecipeID: req.RecipeID,
		UserID:   req.UserID,
		Stars:    req.Stars,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.NewRatingResp(rating))
}

func (s *HTTPServer) RatingList(c echo.Context) error {
	page, err := GetPage(c)
	if err != nil {
		return err
	}

	ratings, err := s.cookbook.ListRatings(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewPageResp(ratings, models.NewRatingResp))
}

func (s *HTTPServer) RatingGet(c echo.Context) error {
	recipeID, err := GetUUIDParam(c, "recipeId")
	if err != nil {
		return err
	}
	userID, err := GetParam(c, "userId")
	if err != nil {
		return err
	}

	rating, err := s.cookbook.GetRating(c.Request().Context(), recipeID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewRatingResp(rating))
}

func (s *HTTPServer) RatingUpdate(c echo.Context) error {
	recipeID, err := GetUUIDParam(c, "recipeId")
	if err != nil {
		return err
	}
	userID, err := GetParam(c, "userId")
	if err != nil {
		return err
	}

	req := models.RatingStarsReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	rating, err := s.cookbook.UpdateRating(c.Request().Context(), recipeID, userID, req.Stars)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewRatingResp(rating))
}

func (s *HTTPServer) RatingDelete(c echo.Context) error {
	recipeID, err := GetUUIDParam(c, "recipeId")
	if err != nil {
		return err
	}
	userID, err := GetParam(c, "userId")
	if err != nil {
		return err
	}

	rating, err := s.cookbook.DeleteRating(c.Request().Context(), recipeID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewRatingResp(rating))
}
