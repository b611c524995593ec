package service

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
)

var publicRecipeColumns = []string{
	"r.recipe_id",
	"r.title",
	"r.description",
	"r.cooking_time",
	"r.preparation_time",
	"r.image_path",
	"r.user_id",
	"u.first_name",
	"u.last_name",
}

// PublicRecipes returns recipes together with their average stars, the number
// of ratings and the owner's name. An empty ownerID selects every owner.
func (s *Cookbook) PublicRecipes(ctx context.Context, ownerID string, page Page) (*Paged[db.RecipeSummary], error) {
	page = page.normalize()
	conn := s.db.WithContext(ctx)

	w := squirrel.Eq{}
	if ownerID != "" {
		w["r.user_id"] = ownerID
	}

	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").From("recipes r").
		Where(w).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build count sql")
	}

	var total int64
	if err := conn.Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count")
	}

	summaries := make([]db.RecipeSummary, 0)
	if page.beyond(total) {
		return &Paged[db.RecipeSummary]{
			Items: summaries,
			Total: total,
			Page:  page,
		}, nil
	}

	columns := append([]string{}, publicRecipeColumns...)
	columns = append(columns,
		"COALESCE(AVG(CAST(rt.stars AS DOUBLE PRECISION)), 0.0) AS stars",
		"COUNT(rt.stars) AS rating_amount",
	)

	q := squirrel.
		Select(columns...).From("recipes r").
		Join("users u ON u.user_id = r.user_id").
		LeftJoin("ratings rt ON rt.recipe_id = r.recipe_id").
		Where(w).
		GroupBy(publicRecipeColumns...).
		OrderBy("r.title", "r.recipe_id")
	if page.Size > 0 {
		q = q.Limit(uint64(page.Size)).Offset(uint64(page.offset()))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	if err := conn.Raw(sql, args...).Scan(&summaries).Error; err != nil {
		return nil, errors.Wrap(err, "scan")
	}

	return &Paged[db.RecipeSummary]{
		Items: summaries,
		Total: total,
		Page:  page,
	}, nil
}
