package entity

import (
	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/enum"
)

// ActingUser is the explicit caller identity passed into every service
// operation. Handlers build it from the verified token claims; services
// never reach into ambient request state for role or branch.
type ActingUser struct {
	ID       uuid.UUID
	Role     enum.Role
	BranchID *uuid.UUID
}

// IsAdmin reports whether the caller holds the admin role.
func (a ActingUser) IsAdmin() bool {
	return a.Role == enum.RoleAdmin
}
