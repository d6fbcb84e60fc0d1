package repository

import (
	"catalog-service/entities"
	"context"
	"database/sql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrRecordNotFound is returned by every Find* lookup that matches no row.
var ErrRecordNotFound = gorm.ErrRecordNotFound

type Repository interface {
	Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error
	GetDB(ctx context.Context) *gorm.DB
	Migrate(ctx context.Context) error

	UserRepository
	ProgressRepository
	CatalogRepository
	EngagementRepository
	SubscriptionRepository
	JobRepository
}

type repo struct {
	db *gorm.DB
}

type txKey struct{}

// OpenPostgres wraps an already opened lib/pq handle in gorm.
func OpenPostgres(db *sql.DB, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(level),
		},
	)
}

func NewRepo(db *gorm.DB) Repository {
	return &repo{
		db: db,
	}
}

// GetDB returns the transaction bound to ctx, if any, else the root handle.
func (r *repo) GetDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *repo) Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	return r.GetDB(ctx).Transaction(func(tx *gorm.DB) error {
		return callback(context.WithValue(ctx, txKey{}, tx))
	}, opts...)
}

func (r *repo) Migrate(ctx context.Context) error {
	return r.GetDB(ctx).AutoMigrate(entities.All()...)
}

// Page is a 1-based page request.
type Page struct {
	Page    int
	PerPage int
}

func (p Page) normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 10
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
	return p
}

func (p Page) Offset() int {
	p = p.normalize()
	return (p.Page - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.normalize().PerPage
}
