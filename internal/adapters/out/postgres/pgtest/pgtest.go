// Package pgtest starts a throwaway PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"time"

	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/accountrepo"
	"fooddelivery/internal/adapters/out/postgres/productrepo"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Tables lists every migrated table, in truncation order.
var Tables = []string{"notifications", "order_lines", "orders", "products", "accounts"}

// Database is a migrated database running in a container.
type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, connects GORM and migrates the schema.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "start container")
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, errors.Wrap(err, "connection string")
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, errors.Wrap(err, "open database")
	}

	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every table and resets identity sequences.
func (d *Database) Truncate() error {
	for _, table := range Tables {
		if err := d.DB.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			return errors.Wrapf(err, "truncate %s", table)
		}
	}
	return nil
}

// SeedAccount inserts an active, available account unless the id is taken.
func (d *Database) SeedAccount(id kernel.ID, role account.Role) error {
	a, err := account.RestoreAccount(id, "user"+id.String()+"@example.com", "Sam", role, account.Active, account.Available)
	if err != nil {
		return err
	}
	dto := accountrepo.FromDomain(a)
	if err = d.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error; err != nil {
		return errors.Wrapf(err, "seed account %d", id.Int64())
	}
	return nil
}

// SeedProduct inserts a catalog product unless the id is taken.
func (d *Database) SeedProduct(id kernel.ID, price string) error {
	dto := productrepo.ProductDTO{ID: id.Int64(), Name: "product " + id.String(), Price: decimal.RequireFromString(price)}
	if err := d.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error; err != nil {
		return errors.Wrapf(err, "seed product %d", id.Int64())
	}
	return nil
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
