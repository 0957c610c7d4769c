// Package productrepo is the read-only catalog lookup.
package productrepo

import (
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ProductDTO is a catalog entry. Only the columns the order lifecycle needs are mapped.
type ProductDTO struct {
	ID    int64           `gorm:"primaryKey;autoIncrement"`
	Name  string          `gorm:"type:varchar(200);not null"`
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

func toDomain(dto ProductDTO) (catalog.Product, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.RestoreProduct(kernel.ID(dto.ID), dto.Name, price)
}
