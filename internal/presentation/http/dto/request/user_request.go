package request

import "github.com/google/uuid"

// UpdateUserRequest represents the admin user update request payload
type UpdateUserRequest struct {
	Role       *string    `json:"role" binding:"omitempty,oneof=admin salesman"`
	BranchID   *uuid.UUID `json:"branch_id"`
	IsApproved *bool      `json:"is_approved"`
}
