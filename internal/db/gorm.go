package db

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/config"
)

var (
	Module = fx.Provide(
		NewGormClient,
	)
)

type (
	User struct {
		UserID    string `gorm:"primaryKey"`
		Email     string `gorm:"unique;not null"`
		FirstName string `gorm:"not null"`
		LastName  string `gorm:"not null"`
	}

	Recipe struct {
		RecipeID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
		Title           string    `gorm:"not null"`
		Description     string    `gorm:"not null"`
		CookingTime     int       `gorm:"not null"`
		PreparationTime int       `gorm:"not null"`
		ImagePath       string    `gorm:"not null"`
		UserID          string    `gorm:"not null;index"`
	}

	Ingredient struct {
		IngredientID uuid.UUID `gorm:"type:varchar(36);primaryKey"`
		Name         string    `gorm:"unique;not null"`
	}

	RecipeIngredient struct {
		RecipeID     uuid.UUID `gorm:"type:varchar(36);primaryKey"`
		IngredientID uuid.UUID `gorm:"type:varchar(36);primaryKey"`
		Amount       int       `gorm:"not null"`
		Unit         Unit      `gorm:"type:varchar(8);not null"`
	}

	PreparationStep struct {
		StepID      uuid.UUID `gorm:"type:varchar(36);primaryKey"`
		RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;index"`
		StepNumber  int       `gorm:"not null"`
		Description string    `gorm:"not null"`
	}

	Category struct {
		CategoryID uuid.UUID `gorm:"type:varchar(36);primaryKey"`
		Name       string    `gorm:"unique;not null"`
	}

	RecipeCategory struct {
		RecipeID   uuid.UUID `gorm:"type:varchar(36);primaryKey"`
		CategoryID uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	}

	Rating struct {
		RecipeID uuid.UUID `gorm:"type:varchar(36);primaryKey"`
		UserID   string    `gorm:"primaryKey"`
		Stars    int       `gorm:"not null"`
	}

	// RecipeIngredientRow is a RecipeIngredient joined with the ingredient name.
	RecipeIngredientRow struct {
		RecipeID     uuid.UUID
		IngredientID uuid.UUID
		Amount       int
		Unit         Unit
		Name         string
	}

	// RecipeSummary is one row of the public recipe aggregation.
	RecipeSummary struct {
		RecipeID        uuid.UUID
		Title           string
		Description     string
		CookingTime     int
		PreparationTime int
		ImagePath       string
		UserID          string
		Stars           float64
		RatingAmount    int64
		FirstName       string
		LastName        string
	}
)

func (r *Recipe) BeforeCreate(*gorm.DB) error {
	if r.RecipeID == uuid.Nil {
		r.RecipeID = uuid.New()
	}
	return nil
}

func (i *Ingredient) BeforeCreate(*gorm.DB) error {
	if i.IngredientID == uuid.Nil {
		i.IngredientID = uuid.New()
	}
	return nil
}

func (s *PreparationStep) BeforeCreate(*gorm.DB) error {
	if s.StepID == uuid.Nil {
		s.StepID = uuid.New()
	}
	return nil
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.CategoryID == uuid.Nil {
		c.CategoryID = uuid.New()
	}
	return nil
}

func NewGormClient(lc fx.Lifecycle, cfg *config.Config, l *zap.SugaredLogger) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if cfg.DBAutoMigrate {
		if err := Migrate(context.Background(), db, DialectFor(cfg.DBDriver)); err != nil {
			return nil, errors.Wrap(err, "migrate")
		}
		l.Infow("database migrated", "driver", cfg.DBDriver)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Info("Closing database.")
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to the configured driver without migrating.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         newGormLogger(cfg.DBLogLevel),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err = gorm.Open(sqliteDialector(cfg.DBPath), gormCfg)
	default:
		db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}
	return db, nil
}

func DialectFor(driver string) string {
	if driver == config.DriverSQLite {
		return DialectSQLite
	}
	return DialectPostgres
}

// OpenSQLite opens a sqlite database file through the pure-Go driver with
// foreign keys enforced.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqliteDialector(path), &gorm.Config{
		Logger:         newGormLogger("silent"),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	return db, nil
}

func sqliteDialector(path string) gorm.Dialector {
	return sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}
}

func newGormLogger(level string) logger.Interface {
	logLevel := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "info":
		logLevel = logger.Info
	}

	return logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		Colorful:                  false,
		IgnoreRecordNotFoundError: true,
	})
}
