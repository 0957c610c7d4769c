package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
)

// AccountRepository reads identity-store accounts and flips agent availability.
type AccountRepository interface {
	// Get retrieves an account.
	// Returns *errs.ObjectNotFoundError if the account does not exist.
	Get(ctx context.Context, id kernel.ID) (*account.Account, error)

	// GetForUpdate retrieves an account and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.ID) (*account.Account, error)

	// ClaimAgent moves an agent from AVAILABLE to UNAVAILABLE with a compare-and-set update.
	// Returns *errs.ConflictError if no row changed (the agent was claimed concurrently).
	ClaimAgent(ctx context.Context, id kernel.ID) error

	// ReleaseAgent sets the agent back to AVAILABLE. Releasing an available agent is not an error.
	ReleaseAgent(ctx context.Context, id kernel.ID) error
}
