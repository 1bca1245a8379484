package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/application/service"
	"github.com/kogello/mazao-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles stock view HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List handles listing current stock
// @Summary List inventory
// @Description Current stock rows, scoped to the caller's branch for salesmen
// @Tags inventory
// @Security BearerAuth
// @Produce json
// @Param branch_id query string false "Branch filter (admins only)"
// @Success 200 {object} response.APIResponse
// @Router /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return
		}
		branchID = &id
	}

	items, err := h.inventoryService.ListInventory(c.Request.Context(), actor, branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory retrieved successfully", gin.H{
		"items": items,
	})
}
