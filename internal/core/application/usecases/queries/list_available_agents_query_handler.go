package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ListAvailableAgentsQueryHandler lists assignable agents, sorted by id.
type ListAvailableAgentsQueryHandler struct {
	db *gorm.DB
}

// NewListAvailableAgentsQueryHandler creates a handler for agent lists.
func NewListAvailableAgentsQueryHandler(db *gorm.DB) ListAvailableAgentsQueryHandler {
	return ListAvailableAgentsQueryHandler{db: db}
}

// Handle executes the query. Only active admins may list agents.
func (h ListAvailableAgentsQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableAgentsQuery,
) ([]AgentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := access.CanAssignAgent(query.Caller()); err != nil {
		return nil, err
	}

	agents := make([]AgentView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			email,
			first_name
		FROM accounts
		WHERE role = ? AND status = ? AND agent_status = ?
		ORDER BY id
	`, string(account.Agent), string(account.Active), string(account.Available)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			agent AgentView
			id    int64
		)
		if err = rows.Scan(&id, &agent.Email, &agent.FirstName); err != nil {
			return nil, err
		}
		agent.ID = kernel.ID(id)
		agents = append(agents, agent)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
