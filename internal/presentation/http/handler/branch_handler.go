package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kogello/mazao-api/internal/application/service"
	"github.com/kogello/mazao-api/internal/presentation/http/dto/request"
	"github.com/kogello/mazao-api/internal/presentation/http/dto/response"
)

// BranchHandler handles branch HTTP requests
type BranchHandler struct {
	branchService *service.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create handles opening a branch
// @Summary Create branch
// @Tags branches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.BranchRequest true "Branch data"
// @Success 201 {object} response.APIResponse
// @Router /branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), actor, &service.BranchInput{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created successfully", gin.H{
		"branch": branch,
	})
}

// Get handles fetching one branch
// @Summary Get branch
// @Tags branches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} response.APIResponse
// @Router /branches/{id} [get]
func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch retrieved successfully", gin.H{
		"branch": branch,
	})
}

// Update handles renaming or relocating a branch
// @Summary Update branch
// @Tags branches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param request body request.BranchRequest true "Updated data"
// @Success 200 {object} response.APIResponse
// @Router /branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	var req request.BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), actor, id, &service.BranchInput{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch updated successfully", gin.H{
		"branch": branch,
	})
}

// Delete handles closing a branch
// @Summary Delete branch
// @Tags branches
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Success 204
// @Router /branches/{id} [delete]
func (h *BranchHandler) Delete(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.branchService.DeleteBranch(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing all branches
// @Summary List branches
// @Tags branches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branches retrieved successfully", gin.H{
		"branches": branches,
	})
}
