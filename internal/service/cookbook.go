package service

import (
	"context"
	"math"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

var (
	Module = fx.Provide(
		NewCookbook,
	)

	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
)

// Cookbook is the access layer over the recipe store. Every method derives its
// own context-bound session from the pool; mutating methods run in a
// transaction scoped to the call.
type Cookbook struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewCookbook(db *gorm.DB, l *zap.SugaredLogger) *Cookbook {
	return &Cookbook{
		db:     db,
		logger: l,
	}
}

// Ping reports whether the store is reachable.
func (s *Cookbook) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}
	return sqlDB.PingContext(ctx)
}

type (
	// Page selects a 1-based page. Size 0 disables pagination.
	Page struct {
		Number int
		Size   int
	}

	Paged[T any] struct {
		Items []T
		Total int64
		Page  Page
	}
)

func (p Page) normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 0 {
		p.Size = 0
	}
	return p
}

// offset saturates at math.MaxInt instead of wrapping.
func (p Page) offset() int {
	if p.Size > 0 && p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// beyond reports whether the page starts after the last of total rows.
func (p Page) beyond(total int64) bool {
	return p.Size > 0 && int64(p.offset()) >= total
}

func paginate[T any](ctx context.Context, conn *gorm.DB, page Page, order string, scopes ...func(*gorm.DB) *gorm.DB) (*Paged[T], error) {
	page = page.normalize()

	var (
		model T
		total int64
	)
	if err := conn.WithContext(ctx).Model(&model).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count")
	}

	items := make([]T, 0)
	if !page.beyond(total) {
		q := conn.WithContext(ctx).Model(&model).Scopes(scopes...).Order(order)
		if page.Size > 0 {
			q = q.Offset(page.offset()).Limit(page.Size)
		}
		if err := q.Find(&items).Error; err != nil {
			return nil, errors.Wrap(err, "find")
		}
	}

	return &Paged[T]{
		Items: items,
		Total: total,
		Page:  page,
	}, nil
}

func exists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// mustExist returns a wrapped ErrNotFound when no row matches.
func mustExist(tx *gorm.DB, what string, model interface{}, query string, args ...interface{}) error {
	ok, err := exists(tx, model, query, args...)
	if err != nil {
		return errors.Wrap(err, "check "+what)
	}
	if !ok {
		return errors.Wrap(ErrNotFound, what)
	}
	return nil
}

// translate maps store errors onto the service sentinels.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(ErrNotFound, what)
	}
	if isUniqueViolation(err) {
		return errors.Wrap(ErrConflict, what)
	}
	return errors.Wrap(err, what)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
