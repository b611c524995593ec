//go:build functional

package test_functional

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/models"
)

func TestPing(t *testing.T) {
	resp, err := resty.New().R().Get(endpoint("/ping"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "pong", resp.String())
}

func TestUnauthorizedMutation(t *testing.T) {
	defer FlushDB()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	resp, err := resty.New().
		R().
		SetContext(ctx).
		SetAuthToken("definitely-not-valid").
		SetBody(models.IngredientReq{Name: "Mehl"}).
		Post(endpoint("/ingredients/"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	var count int
	err = DBConn.QueryRow(ctx, "SELECT COUNT(*) FROM ingredients").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPublicRecipes(t *testing.T) {
	if Token == "" {
		t.Skip("TEST_RUNNER_TOKEN not set")
	}
	defer FlushDB()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	cl := resty.New().SetAuthToken(Token)

	for _, id := range []string{"u1", "u2"} {
		resp, err := cl.R().
			SetContext(ctx).
			SetBody(models.UserReq{UserID: id, Email: id + "@example.com", FirstName: "Anna", LastName: "Koch"}).
			Post(endpoint("/users/"))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	}

	resp, err := cl.R().
		SetContext(ctx).
		SetResult(&models.RecipeResp{}).
		SetBody(models.RecipeReq{Title: "Apfelstrudel", Description: "mit Vanillesoße", CookingTime: 45, UserID: "u1"}).
		Post(endpoint("/recipes/"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	recipe := resp.Result().(*models.RecipeResp)

	for user, stars := range map[string]int{"u1": 5, "u2": 3} {
		resp, err := cl.R().
			SetContext(ctx).
			SetBody(models.RatingReq{RecipeID: recipe.RecipeID, UserID: user, Stars: stars}).
			Post(endpoint("/ratings/"))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	}

	resp, err = resty.New().
		R().
		SetContext(ctx).
		SetResult(&models.PageResp[models.PublicRecipeResp]{}).
		Get(endpoint("/recipes/public/"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	page := resp.Result().(*models.PageResp[models.PublicRecipeResp])
	require.Len(t, page.Items, 1)
	assert.InDelta(t, 4.0, page.Items[0].Stars, 0.0001)
	assert.EqualValues(t, 2, page.Items[0].RatingAmount)
	assert.Equal(t, "Anna Koch", page.Items[0].UserName)
}
