package orderrepo

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
// It runs on whatever *gorm.DB it is given; the unit of work passes its transaction.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and all of its lines, then records the assigned id on the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.ID().IsZero() {
		return order.ErrOrderAlreadyPersisted
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "insert order")
	}

	return aggregate.MarkPersisted(kernel.ID(dto.ID))
}

// Update writes the order row. Lines are left untouched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(rowValues(dto))
	if result.Error != nil {
		return errors.Wrapf(result.Error, "update order %d", dto.ID)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	return nil
}

// ReplaceLines deletes the stored lines, inserts the current ones and writes the order row.
func (r *GormOrderRepository) ReplaceLines(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", aggregate.ID().Int64()).Delete(&OrderLineDTO{}).Error; err != nil {
		return errors.Wrapf(err, "delete lines of order %d", aggregate.ID().Int64())
	}

	lines := linesFromDomain(aggregate)
	if err := db.Create(&lines).Error; err != nil {
		return errors.Wrapf(err, "insert lines of order %d", aggregate.ID().Int64())
	}

	return r.Update(ctx, aggregate)
}

// Get retrieves an order with its lines.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order with its lines and holds a row lock on the order
// until the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ListByCustomer returns the customer's orders, newest first.
func (r *GormOrderRepository) ListByCustomer(
	ctx context.Context,
	customerID kernel.ID,
	limit, offset int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", orderLinesByID).
		Where("customer_id = ?", customerID.Int64()).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list orders of customer %d", customerID.Int64())
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) get(db *gorm.DB, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.Preload("Lines", orderLinesByID).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, errors.Wrapf(err, "get order %d", id.Int64())
	}

	return toDomain(dto)
}

func orderLinesByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
