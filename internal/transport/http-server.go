package transport

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/config"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/service"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/storage"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100

	// keeps (page-1)*size within an int
	maxPageNumber = math.MaxInt / maxPageSize
)

var (
	Module = fx.Provide(
		NewHTTPServer,
	)
)

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		cookbook *service.Cookbook
		gate     auth.TokenValidator
		images   *storage.ImageStore
		logger   *zap.SugaredLogger
		echo     *echo.Echo
	}
)

func NewHTTPServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	cookbook *service.Cookbook,
	gate auth.TokenValidator,
	images *storage.ImageStore,
	logger *zap.SugaredLogger,
) *HTTPServer {
	instance := New(cookbook, gate, images, logger)
	e := instance.echo

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					logger.Fatalw("shutting down the server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return instance
}

// New builds the router without binding a listener.
func New(cookbook *service.Cookbook, gate auth.TokenValidator, images *storage.ImageStore, logger *zap.SugaredLogger) *HTTPServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	instance := HTTPServer{
		cookbook: cookbook,
		gate:     gate,
		images:   images,
		logger:   logger,
		echo:     e,
	}

	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Infow("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = instance.HandleError

	instance.routes()

	return &instance
}

func (s *HTTPServer) routes() {
	e := s.echo
	protected := s.AuthMiddleware

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.GET("/units/", s.UnitList)

	userG := e.Group("/users", protected)
	userG.POST("/", s.UserCreate)
	userG.GET("/", s.UserList)
	userG.GET("/:id", s.UserGet)
	userG.PUT("/:id", s.UserUpdate)
	userG.DELETE("/:id", s.UserDelete)
	userG.GET("/:id/recipes/", s.UserRecipes)
	userG.GET("/:id/ratings/", s.UserRatings)

	recipeG := e.Group("/recipes")
	recipeG.POST("/", s.RecipeCreate)
	recipeG.GET("/", s.RecipeList)
	recipeG.GET("/public/", s.RecipePublicList)
	recipeG.GET("/public/:userId", s.RecipePublicList)
	recipeG.GET("/:id", s.RecipeGet)
	recipeG.PUT("/:id", s.RecipeUpdate, protected)
	recipeG.DELETE("/:id", s.RecipeDelete, protected)
	recipeG.GET("/:id/preparation_steps/", s.RecipeSteps)
	recipeG.GET("/:id/ingredients/", s.RecipeIngredients)
	recipeG.GET("/:id/categories/", s.RecipeCategories)
	recipeG.GET("/:id/ratings/", s.RecipeRatings)
	recipeG.GET("/:id/user/", s.RecipeOwner)
	recipeG.POST("/:id/categories/:categoryId", s.RecipeCategoryLink, protected)
	recipeG.DELETE("/:id/categories/:categoryId", s.RecipeCategoryUnlink, protected)
	recipeG.POST("/:id/ingredients/:ingredientId", s.RecipeIngredientLink, protected)
	recipeG.DELETE("/:id/ingredients/:ingredientId", s.RecipeIngredientUnlink, protected)
	if s.images != nil {
		recipeG.PUT("/:id/image", s.RecipeImageUpload, protected)
	}

	categoryG := e.Group("/categories")
	categoryG.POST("/", s.CategoryCreate, protected)
	categoryG.GET("/", s.CategoryList, protected)
	categoryG.GET("/:id", s.CategoryGet)
	categoryG.GET("/:id/recipes/", s.CategoryRecipes)
	categoryG.PUT("/:id", s.CategoryUpdate, protected)
	categoryG.DELETE("/:id", s.CategoryDelete, protected)

	ingredientG := e.Group("/ingredients")
	ingredientG.POST("/", s.IngredientCreate, protected)
	ingredientG.GET("/", s.IngredientList)
	ingredientG.GET("/:id", s.IngredientGet)
	ingredientG.PUT("/:id", s.IngredientUpdate, protected)
	ingredientG.DELETE("/:id", s.IngredientDelete, protected)

	stepG := e.Group("/preparation_steps")
	stepG.POST("/", s.StepCreate, protected)
	stepG.GET("/", s.StepList)
	stepG.GET("/:id", s.StepGet)
	stepG.PUT("/:id", s.StepUpdate, protected)
	stepG.DELETE("/:id", s.StepDelete, protected)

	ratingG := e.Group("/ratings")
	ratingG.POST("/", s.RatingCreate, protected)
	ratingG.GET("/", s.RatingList)
	ratingG.GET("/:recipeId/:userId", s.RatingGet)
	ratingG.PUT("/:recipeId/:userId", s.RatingUpdate, protected)
	ratingG.DELETE("/:recipeId/:userId", s.RatingDelete, protected)
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *HTTPServer) UnitList(c echo.Context) error {
	return c.JSON(http.StatusOK, db.Units())
}

// AuthMiddleware lets the request through only when the identity service
// accepts its bearer token.
func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := BearerToken(c.Request())
		if token == "" {
			return c.NoContent(http.StatusUnauthorized)
		}
		if !s.gate.IsValid(c.Request().Context(), token) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return next(c)
	}
}

func BearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// HandleError maps service errors onto HTTP statuses.
func (s *HTTPServer) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		message = fmt.Sprint(he.Message)
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrConflict):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, service.ErrInvalid), errors.Is(err, storage.ErrUnsupportedImage):
		code = http.StatusBadRequest
		message = err.Error()
	default:
		s.logger.Errorw("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"message": message})
	}
	if err != nil {
		s.logger.Errorw("write error response", "error", err)
	}
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid path param '%s'", name))
	}
	return value, nil
}

func GetUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	v, err := GetParam(c, name)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid path param '%s'", name))
	}
	return id, nil
}

// GetPage reads the page and size query params. Sizes above the maximum are capped.
func GetPage(c echo.Context) (service.Page, error) {
	page := service.Page{Number: 1, Size: defaultPageSize}

	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageNumber {
			return page, echo.NewHTTPError(http.StatusBadRequest, "invalid query param 'page'")
		}
		page.Number = n
	}
	if v := c.QueryParam("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, echo.NewHTTPError(http.StatusBadRequest, "invalid query param 'size'")
		}
		page.Size = n
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}
	return page, nil
}
