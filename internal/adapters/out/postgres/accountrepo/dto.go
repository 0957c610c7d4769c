// Package accountrepo reads identity-store accounts and flips agent availability.
package accountrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
)

// AccountDTO is the persisted account. Agent availability lives in agent_status;
// the column is meaningless for customers and admins.
type AccountDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Email       string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	FirstName   string    `gorm:"type:varchar(100);not null;default:''"`
	Role        string    `gorm:"type:varchar(16);not null"`
	Status      string    `gorm:"type:varchar(16);not null;default:ACTIVE"`
	AgentStatus string    `gorm:"type:varchar(16);not null;default:AVAILABLE"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the database table name for accounts.
func (AccountDTO) TableName() string {
	return "accounts"
}

// FromDomain maps an account to its row. Used by seeding and tests.
func FromDomain(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:          a.ID().Int64(),
		Email:       a.Email(),
		FirstName:   a.FirstName(),
		Role:        string(a.Role()),
		Status:      string(a.Status()),
		AgentStatus: string(a.Availability()),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	role, err := account.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	status, err := account.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	availability, err := account.ParseAvailability(dto.AgentStatus)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(kernel.ID(dto.ID), dto.Email, dto.FirstName, role, status, availability)
}
