package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

//go:generate mockgen -source=orm.go -destination=../../../test/unit/doubles/infra/sql/orm_mock.go -package=sql -mock_names=ORM=MockORM

type ORM interface {
	AutoMigrate(dst ...any) error
	Count(count *int64) ORM
	Create(value any) ORM
	Delete(value any, conds ...any) ORM
	Find(dest any, conds ...any) ORM
	First(dest any, conds ...any) ORM
	Limit(limit int) ORM
	Model(value any) ORM
	Order(value any) ORM
	Where(query any, args ...any) ORM
	WithContext(ctx context.Context) ORM

	Error() error
}

type DB struct {
	*gorm.DB
	system  string
	timeout time.Duration
}

var (
	ErrRecordNotFound = errors.New("record not found")
)

func (d DB) Error() error {
	switch {
	case errors.Is(d.DB.Error, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case d.DB.Error != nil:
		return fmt.Errorf("database error: %w", d.DB.Error)
	default:
		return nil
	}
}

var _ ORM = (*DB)(nil)

func (d DB) AutoMigrate(dst ...any) error {
	return d.DB.AutoMigrate(dst...)
}

func (d DB) Count(value *int64) ORM {
	d.DB = d.DB.Count(value)
	return &d
}

func (d DB) Create(value any) ORM {
	d.setSpanAttributes("create")
	d.DB = d.DB.Create(value)
	return &d
}

func (d DB) Delete(value any, conds ...any) ORM {
	d.setSpanAttributes("delete")
	d.DB = d.DB.Delete(value, conds...)
	return &d
}

func (d DB) Find(value any, conds ...any) ORM {
	d.setSpanAttributes("find")
	d.DB = d.DB.Find(value, conds...)
	return &d
}

func (d DB) First(value any, conds ...any) ORM {
	d.setSpanAttributes("first")
	d.DB = d.DB.First(value, conds...)
	return &d
}

func (d DB) Limit(value int) ORM {
	d.DB = d.DB.Limit(value)
	return &d
}

func (d DB) Model(value any) ORM {
	d.DB = d.DB.Model(value)
	return &d
}

func (d DB) Order(value any) ORM {
	d.DB = d.DB.Order(value)
	return &d
}

func (d DB) Where(value any, conds ...any) ORM {
	d.DB = d.DB.Where(value, conds...)
	return &d
}

// WithContext binds ctx to the statement, bounded by the query timeout when
// one is configured.
func (d DB) WithContext(value context.Context) ORM {
	if d.timeout > 0 {
		timeoutCtx, cancel := context.WithTimeout(value, d.timeout)
		context.AfterFunc(timeoutCtx, cancel)
		d.DB = d.DB.WithContext(timeoutCtx)
		return &d
	}

	d.DB = d.DB.WithContext(value)
	return &d
}

func (d DB) setSpanAttributes(operation string) {
	if ctx := d.DB.Statement.Context; ctx != nil {
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(
				attribute.String("span.kind", "client"),
				attribute.String("component", "database"),
				attribute.String("db.system", d.system),
				attribute.String("db.operation", operation),
			)
		}
	}
}
