package accountrepo

import (
	"context"

	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountRepository implements ports.AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Get retrieves an account.
func (r *GormAccountRepository) Get(ctx context.Context, id kernel.ID) (*account.Account, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an account and locks its row.
func (r *GormAccountRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*account.Account, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ClaimAgent flips an active, available agent to UNAVAILABLE.
//
// The availability check is part of the UPDATE itself, so of two transactions racing
// for the same agent only one changes the row; the other gets a ConflictError.
func (r *GormAccountRepository) ClaimAgent(ctx context.Context, id kernel.ID) error {
	result := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Where("id = ? AND role = ? AND status = ? AND agent_status = ?",
			id.Int64(), string(account.Agent), string(account.Active), string(account.Available)).
		Update("agent_status", string(account.Unavailable))
	if result.Error != nil {
		return errors.Wrapf(result.Error, "claim agent %d", id.Int64())
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("agent", id, "is not available")
	}

	return nil
}

// ReleaseAgent sets the agent back to AVAILABLE.
func (r *GormAccountRepository) ReleaseAgent(ctx context.Context, id kernel.ID) error {
	result := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Where("id = ? AND role = ?", id.Int64(), string(account.Agent)).
		Update("agent_status", string(account.Available))
	if result.Error != nil {
		return errors.Wrapf(result.Error, "release agent %d", id.Int64())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", id)
	}

	return nil
}

func (r *GormAccountRepository) get(db *gorm.DB, id kernel.ID) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := db.First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", id)
		}
		return nil, errors.Wrapf(err, "get account %d", id.Int64())
	}

	return toDomain(dto)
}
