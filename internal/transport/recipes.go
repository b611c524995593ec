package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/models"
)

func recipeFromReq(req *models.RecipeReq) db.Recipe {
	return db.Recipe{
		Title:           req.Title,
		Description:     req.Description,
		CookingTime:     req.CookingTime,
		PreparationTime: req.PreparationTime,
		ImagePath:       req.ImagePath,
		UserID:          req.UserID,
	}
}

func (s *HTTPServer) RecipeCreate(c echo.Context) error {
	req := models.RecipeReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	recipe, err := s.cookbook.CreateRecipe(c.Request().Context(), recipeFromReq(&req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.NewRecipeResp(recipe))
}

func (s *HTTPServer) RecipeList(c echo.Context) error {
	page, err := GetPage(c)
	if err != nil {
		return err
	}

	recipes, err := s.cookbook.ListRecipes(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewPageResp(recipes, models.NewRecipeResp))
}

// RecipePublicList serves the public view, optionally narrowed to one owner.
func (s *HTTPServer) RecipePublicList(c echo.Context) error {
	page, err := GetPage(c)
	if err != nil {
		return err
	}

	summaries, err := s.cookbook.PublicRecipes(c.Request().Context(), c.Param("userId"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewPageResp(summaries, models.NewPublicRecipeResp))
}

func (s *HTTPServer) RecipeGet(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	recipe, err := s.cookbook.GetRecipe(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewRecipeResp(recipe))
}

func (s *HTTPServer) RecipeUpdate(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	req := models.RecipeReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	recipe, err := s.cookbook.UpdateRecipe(c.Request().Context(), id, recipeFromReq(&req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewRecipeResp(recipe))
}

func (s *HTTPServer) RecipeDelete(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	recipe, err := s.cookbook.DeleteRecipe(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewRecipeResp(recipe))
}

func (s *HTTPServer) RecipeSteps(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	steps, err := s.cookbook.RecipeSteps(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MapSlice(steps, models.NewStepResp))
}

func (s *HTTPServer) RecipeIngredients(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	rows, err := s.cookbook.RecipeIngredients(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MapSlice(rows, models.NewRecipeIngredientRowResp))
}

func (s *HTTPServer) RecipeCategories(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	categories, err := s.cookbook.RecipeCategories(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MapSlice(categories, models.NewCategoryResp))
}

func (s *HTTPServer) RecipeRatings(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	ratings, err := s.cookbook.RecipeRatings(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MapSlice(ratings, models.NewRatingResp))
}

func (s *HTTPServer) RecipeOwner(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := s.cookbook.RecipeOwner(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewUserResp(user))
}

func (s *HTTPServer) RecipeCategoryLink(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	categoryID, err := GetUUIDParam(c, "categoryId")
	if err != nil {
		return err
	}

	link, err := s.cookbook.LinkRecipeCategory(c.Request().Context(), id, categoryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.NewRecipeCategoryResp(link))
}

func (s *HTTPServer) RecipeCategoryUnlink(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	categoryID, err := GetUUIDParam(c, "categoryId")
	if err != nil {
		return err
	}

	link, err := s.cookbook.UnlinkRecipeCategory(c.Request().Context(), id, categoryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewRecipeCategoryResp(link))
}

func (s *HTTPServer) RecipeIngredientLink(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ingredientID, err := GetUUIDParam(c, "ingredientId")
	if err != nil {
		return err
	}

	req := models.RecipeIngredientReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	link, err := s.cookbook.LinkRecipeIngredient(c.Request().Context(), id, ingredientID, req.Amount, db.Unit(req.Unit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.NewRecipeIngredientResp(link))
}

func (s *HTTPServer) RecipeIngredientUnlink(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ingredientID, err := GetUUIDParam(c, "ingredientId")
	if err != nil {
		return err
	}

	link, err := s.cookbook.UnlinkRecipeIngredient(c.Request().Context(), id, ingredientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewRecipeIngredientResp(link))
}

// RecipeImageUpload stores the multipart field "image" and points the recipe at it.
func (s *HTTPServer) RecipeImageUpload(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := s.cookbook.GetRecipe(ctx, id); err != nil {
		return err
	}

	header, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing form file 'image'")
	}
	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer file.Close()

	key, err := s.images.Upload(ctx, id, header.Filename, file)
	if err != nil {
		return err
	}

	recipe, err := s.cookbook.SetRecipeImage(ctx, id, key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewRecipeResp(recipe))
}
