package postgres

import (
	"fooddelivery/internal/adapters/out/postgres/accountrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/adapters/out/postgres/productrepo"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&accountrepo.AccountDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&outboxrepo.NotificationDTO{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
