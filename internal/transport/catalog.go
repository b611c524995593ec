package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/models"
)

func (s *HTTPServer) CategoryCreate(c echo.Context) error {
	req := models.CategoryReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := s.cookbook.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.NewCategoryResp(category))
}

func (s *HTTPServer) CategoryList(c echo.Context) error {
	page, err := GetPage(c)
	if err != nil {
		return err
	}

	categories, err := s.cookbook.ListCategories(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewPageResp(categories, models.NewCategoryResp))
}

func (s *HTTPServer) CategoryGet(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	category, err := s.cookbook.GetCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewCategoryResp(category))
}

func (s *HTTPServer) CategoryRecipes(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	recipes, err := s.cookbook.CategoryRecipes(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MapSlice(recipes, models.NewRecipeResp))
}

func (s *HTTPServer) CategoryUpdate(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	req := models.CategoryReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := s.cookbook.UpdateCategory(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewCategoryResp(category))
}

func (s *HTTPServer) CategoryDelete(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	category, err := s.cookbook.DeleteCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewCategoryResp(category))
}

func (s *HTTPServer) IngredientCreate(c echo.Context) error {
	req := models.IngredientReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	ingredient, err := s.cookbook.CreateIngredient(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.NewIngredientResp(ingredient))
}

func (s *HTTPServer) IngredientList(c echo.Context) error {
	page, err := GetPage(c)
	if err != nil {
		return err
	}

	ingredients, err := s.cookbook.ListIngredients(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewPageResp(ingredients, models.NewIngredientResp))
}

func (s *HTTPServer) IngredientGet(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	ingredient, err := s.cookbook.GetIngredient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewIngredientResp(ingredient))
}

func (s *HTTPServer) IngredientUpdate(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	req := models.IngredientReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	ingredient, err := s.cookbook.UpdateIngredient(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewIngredientResp(ingredient))
}

func (s *HTTPServer) IngredientDelete(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	ingredient, err := s.cookbook.DeleteIngredient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewIngredientResp(ingredient))
}

func stepFromReq(req *models.StepReq) db.PreparationStep {
	return db.PreparationStep{
		RecipeID:    req.RecipeID,
		StepNumber:  req.StepNumber,
		Description: req.Description,
	}
}

func (s *HTTPServer) StepCreate(c echo.Context) error {
	req := models.StepReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	step, err := s.cookbook.CreateStep(c.Request().Context(), stepFromReq(&req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.NewStepResp(step))
}

func (s *HTTPServer) StepList(c echo.Context) error {
	page, err := GetPage(c)
	if err != nil {
		return err
	}

	steps, err := s.cookbook.ListSteps(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewPageResp(steps, models.NewStepResp))
}

func (s *HTTPServer) StepGet(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	step, err := s.cookbook.GetStep(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewStepResp(step))
}

func (s *HTTPServer) StepUpdate(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	req := models.StepReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	step, err := s.cookbook.UpdateStep(c.Request().Context(), id, stepFromReq(&req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewStepResp(step))
}

func (s *HTTPServer) StepDelete(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	step, err := s.cookbook.DeleteStep(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewStepResp(step))
}
