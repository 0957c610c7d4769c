package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand hands a pending order to a delivery agent.
//
// Example:
//
//	cmd, err := NewAssignAgentCommand(admin, orderID, agentID)
//	if err != nil {
//	    return err
//	}
//	assigned, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // order already has an agent, or the agent is busy
//	case errors.Is(err, errs.ErrPreconditionFailed):
//	    // agent is blocked or deleted
//	}
type AssignAgentCommand struct {
	caller  access.Caller
	orderID kernel.ID
	agentID kernel.ID

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates an assignment command.
func NewAssignAgentCommand(caller access.Caller, orderID, agentID kernel.ID) (AssignAgentCommand, error) {
	var agentErr error
	if err := agentID.Validate(); err != nil {
		agentErr = errs.NewValueIsInvalidErrorWithCause("agent_id", err)
	}
	if err := errors.Join(orderID.Validate(), agentErr); err != nil {
		return AssignAgentCommand{}, err
	}

	return AssignAgentCommand{
		caller:  caller,
		orderID: orderID,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

// Caller returns the admin performing the assignment.
func (c AssignAgentCommand) Caller() access.Caller {
	return c.caller
}

// OrderID returns the order to assign.
func (c AssignAgentCommand) OrderID() kernel.ID {
	return c.orderID
}

// AgentID returns the agent to assign.
func (c AssignAgentCommand) AgentID() kernel.ID {
	return c.agentID
}
