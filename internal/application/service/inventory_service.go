package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/apperror"
)

// InventoryService exposes the stock view. Salesmen see their own
// branch; admins can look at any branch or all of them.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventoryRepo repository.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// ListInventory returns current stock rows, scoped by caller role
func (s *InventoryService) ListInventory(ctx context.Context, actor entity.ActingUser, branchID *uuid.UUID) ([]entity.InventoryItem, error) {
	if !actor.IsAdmin() {
		if actor.BranchID == nil {
			return nil, apperror.NewBadRequestError("User has no branch assigned")
		}
		branchID = actor.BranchID
	}

	return s.inventoryRepo.List(ctx, branchID)
}
