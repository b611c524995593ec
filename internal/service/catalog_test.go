package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
)

// catalogOps reduces an entity to its uuid key and one string field so the
// same CRUD checks run against ingredients, categories and steps.
type catalogOps struct {
	create func(label string) (uuid.UUID, error)
	get    func(id uuid.UUID) (string, error)
	update func(id uuid.UUID, label string) (string, error)
	remove func(id uuid.UUID) (string, error)
	list   func() ([]string, error)
}

func labelOf[T any](v *T, err error, f func(*T) string) (string, error) {
	if err != nil {
		return "", err
	}
	return f(v), nil
}

func labelsOf[T any](p *Paged[T], err error, f func(*T) string) ([]string, error) {
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(p.Items))
	for i := range p.Items {
		labels = append(labels, f(&p.Items[i]))
	}
	return labels, nil
}

func ingredientOps(ctx context.Context, s *Cookbook) catalogOps {
	name := func(i *db.Ingredient) string { return i.Name }
	return catalogOps{
		create: func(label string) (uuid.UUID, error) {
			i, err := s.CreateIngredient(ctx, label)
			if err != nil {
				return uuid.Nil, err
			}
			return i.IngredientID, nil
		},
		get: func(id uuid.UUID) (string, error) {
			i, err := s.GetIngredient(ctx, id)
			return labelOf(i, err, name)
		},
		update: func(id uuid.UUID, label string) (string, error) {
			i, err := s.UpdateIngredient(ctx, id, label)
			return labelOf(i, err, name)
		},
		remove: func(id uuid.UUID) (string, error) {
			i, err := s.DeleteIngredient(ctx, id)
			return labelOf(i, err, name)
		},
		list: func() ([]string, error) {
			p, err := s.ListIngredients(ctx, Page{})
			return labelsOf(p, err, name)
		},
	}
}

func categoryOps(ctx context.Context, s *Cookbook) catalogOps {
	name := func(c *db.Category) string { return c.Name }
	return catalogOps{
		create: func(label string) (uuid.UUID, error) {
			c, err := s.CreateCategory(ctx, label)
			if err != nil {
				return uuid.Nil, err
			}
			return c.CategoryID, nil
		},
		get: func(id uuid.UUID) (string, error) {
			c, err := s.GetCategory(ctx, id)
			return labelOf(c, err, name)
		},
		update: func(id uuid.UUID, label string) (string, error) {
			c, err := s.UpdateCategory(ctx, id, label)
			return labelOf(c, err, name)
		},
		remove: func(id uuid.UUID) (string, error) {
			c, err := s.DeleteCategory(ctx, id)
			return labelOf(c, err, name)
		},
		list: func() ([]string, error) {
			p, err := s.ListCategories(ctx, Page{})
			return labelsOf(p, err, name)
		},
	}
}

func stepOps(ctx context.Context, s *Cookbook, recipeID uuid.UUID) catalogOps {
	description := func(st *db.PreparationStep) string { return st.Description }
	step := func(label string) db.PreparationStep {
		return db.PreparationStep{RecipeID: recipeID, StepNumber: 1, Description: label}
	}
	return catalogOps{
		create: func(label string) (uuid.UUID, error) {
			st, err := s.CreateStep(ctx, step(label))
			if err != nil {
				return uuid.Nil, err
			}
			return st.StepID, nil
		},
		get: func(id uuid.UUID) (string, error) {
			st, err := s.GetStep(ctx, id)
			return labelOf(st, err, description)
		},
		update: func(id uuid.UUID, label string) (string, error) {
			st, err := s.UpdateStep(ctx, id, step(label))
			return labelOf(st, err, description)
		},
		remove: func(id uuid.UUID) (string, error) {
			st, err := s.DeleteStep(ctx, id)
			return labelOf(st, err, description)
		},
		list: func() ([]string, error) {
			p, err := s.ListSteps(ctx, Page{})
			return labelsOf(p, err, description)
		},
	}
}

func TestCatalogCRUD(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		setup  func(t *testing.T, s *Cookbook) catalogOps
		unique bool
	}{
		{
			name: "ingredient",
			setup: func(t *testing.T, s *Cookbook) catalogOps {
				return ingredientOps(ctx, s)
			},
			unique: true,
		},
		{
			name: "category",
			setup: func(t *testing.T, s *Cookbook) catalogOps {
				return categoryOps(ctx, s)
			},
			unique: true,
		},
		{
			name: "step",
			setup: func(t *testing.T, s *Cookbook) catalogOps {
				mustUser(t, s, "u1")
				recipe := mustRecipe(t, s, "u1", "Zimtschnecken")
				return stepOps(ctx, s, recipe.RecipeID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := tt.setup(t, newTestCookbook(t))

			id, err := ops.create("Zimt")
			require.NoError(t, err)
			require.NotEqual(t, uuid.Nil, id)

			t.Run("create then get", func(t *testing.T) {
				got, err := ops.get(id)
				require.NoError(t, err)
				assert.Equal(t, "Zimt", got)
			})

			t.Run("update then get", func(t *testing.T) {
				updated, err := ops.update(id, "Ceylon-Zimt")
				require.NoError(t, err)
				assert.Equal(t, "Ceylon-Zimt", updated)

				got, err := ops.get(id)
				require.NoError(t, err)
				assert.Equal(t, "Ceylon-Zimt", got)
			})

			t.Run("update keeps its own value", func(t *testing.T) {
				updated, err := ops.update(id, "Ceylon-Zimt")
				require.NoError(t, err)
				assert.Equal(t, "Ceylon-Zimt", updated)
			})

			t.Run("update of a missing id leaves the store unchanged", func(t *testing.T) {
				before, err := ops.list()
				require.NoError(t, err)

				_, err = ops.update(uuid.New(), "Anis")
				assert.ErrorIs(t, err, ErrNotFound)

				after, err := ops.list()
				require.NoError(t, err)
				assert.Equal(t, before, after)
			})

			if tt.unique {
				t.Run("rename to an existing name conflicts", func(t *testing.T) {
					_, err := ops.create("Anis")
					require.NoError(t, err)

					_, err = ops.update(id, "Anis")
					assert.ErrorIs(t, err, ErrConflict)

					got, err := ops.get(id)
					require.NoError(t, err)
					assert.Equal(t, "Ceylon-Zimt", got)

					_, err = ops.create("Ceylon-Zimt")
					assert.ErrorIs(t, err, ErrConflict)
				})
			}

			t.Run("delete then get is not found", func(t *testing.T) {
				deleted, err := ops.remove(id)
				require.NoError(t, err)
				assert.Equal(t, "Ceylon-Zimt", deleted)

				_, err = ops.get(id)
				assert.ErrorIs(t, err, ErrNotFound)

				_, err = ops.remove(id)
				assert.ErrorIs(t, err, ErrNotFound)

				_, err = ops.update(id, "Zimt")
				assert.ErrorIs(t, err, ErrNotFound)

				labels, err := ops.list()
				require.NoError(t, err)
				assert.NotContains(t, labels, "Ceylon-Zimt")
			})
		})
	}
}

func TestStepMoveToMissingRecipe(t *testing.T) {
	ctx := context.Background()
	s := newTestCookbook(t)
	mustUser(t, s, "u1")
	recipe := mustRecipe(t, s, "u1", "Brot")

	step, err := s.CreateStep(ctx, db.PreparationStep{RecipeID: recipe.RecipeID, StepNumber: 2, Description: "kneten"})
	require.NoError(t, err)

	_, err = s.UpdateStep(ctx, step.StepID, db.PreparationStep{RecipeID: uuid.New(), StepNumber: 3, Description: "backen"})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetStep(ctx, step.StepID)
	require.NoError(t, err)
	assert.Equal(t, step, got)
}

func TestDeleteCatalogEntryUnlinksRecipes(t *testing.T) {
	ctx := context.Background()
	s := newTestCookbook(t)
	mustUser(t, s, "u1")
	recipe := mustRecipe(t, s, "u1", "Milchreis")

	zimt, err := s.CreateIngredient(ctx, "Zimt")
	require.NoError(t, err)
	_, err = s.LinkRecipeIngredient(ctx, recipe.RecipeID, zimt.IngredientID, 1, db.UnitTL)
	require.NoError(t, err)

	_, err = s.DeleteIngredient(ctx, zimt.IngredientID)
	require.NoError(t, err)

	rows, err := s.RecipeIngredients(ctx, recipe.RecipeID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = s.GetRecipe(ctx, recipe.RecipeID)
	assert.NoError(t, err)
}
