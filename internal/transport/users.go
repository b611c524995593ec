package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/models"
)

func (s *HTTPServer) UserCreate(c echo.Context) error {
	req := models.UserReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := s.cookbook.CreateUser(c.Request().Context(), db.User{
		UserID:    req.UserID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.NewUserResp(user))
}

func (s *HTTPServer) UserList(c echo.Context) error {
	page, err := GetPage(c)
	if err != nil {
		return err
	}

	users, err := s.cookbook.ListUsers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewPageResp(users, models.NewUserResp))
}

func (s *HTTPServer) UserGet(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	user, err := s.cookbook.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewUserResp(user))
}

func (s *HTTPServer) UserUpdate(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	req := models.UserUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := s.cookbook.UpdateUser(c.Request().Context(), id, db.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewUserResp(user))
}

func (s *HTTPServer) UserDelete(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	user, err := s.cookbook.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewUserResp(user))
}

func (s *HTTPServer) UserRecipes(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	recipes, err := s.cookbook.UserRecipes(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MapSlice(recipes, models.NewRecipeResp))
}

func (s *HTTPServer) UserRatings(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	ratings, err := s.cookbook.UserRatings(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MapSlice(ratings, models.NewRatingResp))
}
