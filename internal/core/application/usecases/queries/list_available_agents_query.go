package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrListAvailableAgentsQueryIsNotConstructed = errors.New(
	"ListAvailableAgentsQuery must be created via NewListAvailableAgentsQuery constructor",
)

// ListAvailableAgentsQuery retrieves the agents an admin can assign right now:
// active agents that are not holding an order.
//
// Example:
//
//	query := NewListAvailableAgentsQuery(admin)
//	agents, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, a := range agents {
//	    fmt.Printf("agent %d <%s>\n", a.ID, a.Email)
//	}
type ListAvailableAgentsQuery struct {
	caller access.Caller

	guard guard.ConstructorGuard
}

// NewListAvailableAgentsQuery creates the query.
func NewListAvailableAgentsQuery(caller access.Caller) ListAvailableAgentsQuery {
	return ListAvailableAgentsQuery{caller: caller, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListAvailableAgentsQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableAgentsQueryIsNotConstructed)
}

// Caller returns the admin asking for the list.
func (q ListAvailableAgentsQuery) Caller() access.Caller {
	return q.caller
}

// AgentView is an assignable agent.
type AgentView struct {
	ID        kernel.ID
	Email     string
	FirstName string
}
