package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kogello/mazao-api/internal/application/service"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/presentation/http/dto/request"
	"github.com/kogello/mazao-api/internal/presentation/http/dto/response"
	"github.com/kogello/mazao-api/pkg/pagination"
)

// CounterpartyHandler handles counterparty and ledger HTTP requests
type CounterpartyHandler struct {
	counterpartyService *service.CounterpartyService
	ledgerService       *service.LedgerService
}

// NewCounterpartyHandler creates a new counterparty handler
func NewCounterpartyHandler(counterpartyService *service.CounterpartyService, ledgerService *service.LedgerService) *CounterpartyHandler {
	return &CounterpartyHandler{
		counterpartyService: counterpartyService,
		ledgerService:       ledgerService,
	}
}

// Create handles creating a counterparty
// @Summary Create counterparty
// @Description Register a new customer or supplier
// @Tags counterparties
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateCounterpartyRequest true "Counterparty data"
// @Success 201 {object} response.APIResponse
// @Router /counterparties [post]
func (h *CounterpartyHandler) Create(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	cpType, err := enum.ParseCounterpartyType(req.Type)
	if err != nil {
		response.BadRequest(c, "Invalid type, must be customer or supplier")
		return
	}

	counterparty, err := h.counterpartyService.CreateCounterparty(c.Request.Context(), actor, &service.CounterpartyInput{
		Name:     req.Name,
		Type:     cpType,
		Phone:    req.Phone,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Counterparty created successfully", gin.H{
		"counterparty": counterparty,
	})
}

// Get handles fetching one counterparty with its balance
// @Summary Get counterparty
// @Description Get a counterparty with its derived outstanding balance
// @Tags counterparties
// @Security BearerAuth
// @Produce json
// @Param id path string true "Counterparty ID"
// @Success 200 {object} response.APIResponse
// @Router /counterparties/{id} [get]
func (h *CounterpartyHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid counterparty ID")
		return
	}

	detail, err := h.counterpartyService.GetCounterparty(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Counterparty retrieved successfully", detail)
}

// Update handles updating counterparty contact details
// @Summary Update counterparty
// @Description Update a counterparty's contact details
// @Tags counterparties
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Counterparty ID"
// @Param request body request.UpdateCounterpartyRequest true "Updated data"
// @Success 200 {object} response.APIResponse
// @Router /counterparties/{id} [put]
func (h *CounterpartyHandler) Update(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid counterparty ID")
		return
	}

	var req request.UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	counterparty, err := h.counterpartyService.UpdateCounterparty(c.Request.Context(), actor, id, &service.CounterpartyInput{
		Name:     req.Name,
		Type:     enum.CounterpartyType(req.Type),
		Phone:    req.Phone,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Counterparty updated successfully", gin.H{
		"counterparty": counterparty,
	})
}

// Delete handles removing a counterparty
// @Summary Delete counterparty
// @Description Delete a counterparty without trading history
// @Tags counterparties
// @Security BearerAuth
// @Param id path string true "Counterparty ID"
// @Success 204
// @Failure 409 {object} response.APIResponse
// @Router /counterparties/{id} [delete]
func (h *CounterpartyHandler) Delete(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid counterparty ID")
		return
	}

	if err := h.counterpartyService.DeleteCounterparty(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing counterparties
// @Summary List counterparties
// @Description List counterparties with optional search and type filter
// @Tags counterparties
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name, phone or location"
// @Param type query string false "customer or supplier"
// @Success 200 {object} response.APIResponse
// @Router /counterparties [get]
func (h *CounterpartyHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	var cpType *enum.CounterpartyType
	if raw := c.Query("type"); raw != "" {
		parsed, err := enum.ParseCounterpartyType(raw)
		if err != nil {
			response.BadRequest(c, "Invalid type, must be customer or supplier")
			return
		}
		cpType = &parsed
	}

	result, err := h.counterpartyService.ListCounterparties(c.Request.Context(), &params, c.Query("search"), cpType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Counterparties retrieved successfully", result)
}

// GetLedger handles reconstructing a counterparty's ledger
// @Summary Counterparty ledger
// @Description Chronological invoices and payments with a running balance
// @Tags counterparties
// @Security BearerAuth
// @Produce json
// @Param id path string true "Counterparty ID"
// @Success 200 {object} response.APIResponse
// @Router /counterparties/{id}/ledger [get]
func (h *CounterpartyHandler) GetLedger(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid counterparty ID")
		return
	}

	ledger, err := h.ledgerService.BuildLedger(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger retrieved successfully", ledger)
}
