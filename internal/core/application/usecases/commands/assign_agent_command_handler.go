package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"go.uber.org/zap"
)

// AssignAgentCommandHandler orchestrates agent assignment.
//
// Within one transaction it locks the order row, then the agent row, claims the agent
// with a compare-and-set update and records the agent on the order, which moves to
// assigned. Two admins racing for the same agent get exactly one success; the loser
// sees a ConflictError. The agent is notified after commit.
//
// Example:
//
//	handler := NewAssignAgentCommandHandler(uowFactory, notifier, clock, logger)
//	assigned, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	// assigned.Status() == order.Assigned
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewAssignAgentCommandHandler creates a handler for agent assignment.
func NewAssignAgentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock kernel.Clock,
	logger *zap.Logger,
) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		logger:     logger.Named("assign_agent"),
	}
}

// Handle processes the assignment command and returns the assigned order.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.CanAssignAgent(cmd.Caller()); err != nil {
		return nil, err
	}

	var (
		assigned *order.Order
		agent    *account.Account
	)
	err := inTransaction(ctx, h.uowFactory, func() error {
		var txErr error
		assigned, agent, txErr = h.assign(ctx, cmd)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("Agent assigned",
		zap.Int64("order_id", assigned.ID().Int64()),
		zap.Int64("agent_id", agent.ID().Int64()),
	)
	notifyAll(ctx, h.notifier, h.logger, agentAssignedMessage(assigned, agent))

	return assigned, nil
}

func (h AssignAgentCommandHandler) assign(
	ctx context.Context,
	cmd AssignAgentCommand,
) (*order.Order, *account.Account, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	accountRepo := uow.AccountRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}
	if err = o.CanAssignAgent(); err != nil {
		return nil, nil, err
	}

	agent, err := accountRepo.GetForUpdate(ctx, cmd.AgentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, errs.NewObjectNotFoundErrorWithCause("agent", cmd.AgentID(), err)
	}
	if err != nil {
		return nil, nil, err
	}
	if err = agent.Claim(); err != nil {
		return nil, nil, err
	}

	if err = accountRepo.ClaimAgent(ctx, agent.ID()); err != nil {
		return nil, nil, err
	}

	if err = o.AssignAgent(agent.ID(), h.clock.Now()); err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return o, agent, nil
}
