package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/application/service"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/internal/presentation/http/dto/request"
	"github.com/kogello/mazao-api/internal/presentation/http/dto/response"
	"github.com/kogello/mazao-api/pkg/pagination"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles recording a new invoice
// @Summary Create invoice
// @Description Record a sale or purchase with items and optional initial payment
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	direction, err := enum.ParseDirection(req.Direction)
	if err != nil {
		response.BadRequest(c, "Invalid direction, must be sale or purchase")
		return
	}

	items := make([]service.InvoiceItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		unit, err := enum.ParseUnit(item.Unit)
		if err != nil {
			response.BadRequest(c, "Invalid unit, must be carton, tray or kg")
			return
		}
		items = append(items, service.InvoiceItemInput{
			ProductID: item.ProductID,
			Unit:      unit,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), actor, &service.CreateInvoiceInput{
		Direction:      direction,
		CounterpartyID: req.CounterpartyID,
		Items:          items,
		PaidAmount:     req.PaidAmount,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", gin.H{
		"invoice": invoice,
	})
}

// Get handles fetching one invoice with its items
// @Summary Get invoice
// @Description Get an invoice with its line items
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", gin.H{
		"invoice": invoice,
	})
}

// List handles listing invoices
// @Summary List invoices
// @Description List invoices, newest first, scoped to the caller's branch for salesmen
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param direction query string false "sale or purchase"
// @Param counterparty_id query string false "Filter by counterparty"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var paginationParams pagination.PaginationParams
	if err := c.ShouldBindQuery(&paginationParams); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	paginationParams.Validate()

	params := &repository.InvoiceFilterParams{Pagination: paginationParams}

	if raw := c.Query("direction"); raw != "" {
		direction, err := enum.ParseDirection(raw)
		if err != nil {
			response.BadRequest(c, "Invalid direction, must be sale or purchase")
			return
		}
		params.Direction = &direction
	}
	if raw := c.Query("counterparty_id"); raw != "" {
		counterpartyID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid counterparty ID")
			return
		}
		params.CounterpartyID = &counterpartyID
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), actor, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}
