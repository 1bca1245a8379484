package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kogello/mazao-api/internal/application/service"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/presentation/http/dto/request"
	"github.com/kogello/mazao-api/internal/presentation/http/dto/response"
	"github.com/kogello/mazao-api/pkg/apperror"
)

// PaymentHandler handles payment allocation HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListUnpaidInvoices handles listing the invoices a payment would settle
// @Summary Unpaid invoices
// @Description List a counterparty's unpaid invoices, oldest first
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Counterparty ID"
// @Param direction query string true "sale or purchase"
// @Success 200 {object} response.APIResponse
// @Router /counterparties/{id}/unpaid-invoices [get]
func (h *PaymentHandler) ListUnpaidInvoices(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	counterpartyID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid counterparty ID")
		return
	}
	direction, err := enum.ParseDirection(c.Query("direction"))
	if err != nil {
		response.BadRequest(c, "Invalid direction, must be sale or purchase")
		return
	}

	invoices, err := h.paymentService.ListUnpaidInvoices(c.Request.Context(), actor, counterpartyID, direction)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unpaid invoices retrieved successfully", gin.H{
		"invoices": invoices,
	})
}

// PreviewPayment handles computing an allocation without writing it
// @Summary Preview payment allocation
// @Description Show how a payment would spread across unpaid invoices
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Counterparty ID"
// @Param request body request.PreviewPaymentRequest true "Preview data"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /counterparties/{id}/payments/preview [post]
func (h *PaymentHandler) PreviewPayment(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	counterpartyID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid counterparty ID")
		return
	}

	var req request.PreviewPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	direction, err := enum.ParseDirection(req.Direction)
	if err != nil {
		response.BadRequest(c, "Invalid direction, must be sale or purchase")
		return
	}

	result, err := h.paymentService.PreviewAllocation(c.Request.Context(), actor, counterpartyID, direction, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Allocation preview computed", result)
}

// ProcessPayment handles recording a payment
// @Summary Process payment
// @Description Allocate a payment across unpaid invoices, oldest first
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Counterparty ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.ProcessPaymentRequest true "Payment data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /counterparties/{id}/payments [post]
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	actor, ok := GetActingUser(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	counterpartyID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid counterparty ID")
		return
	}

	var req request.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	direction, err := enum.ParseDirection(req.Direction)
	if err != nil {
		response.BadRequest(c, "Invalid direction, must be sale or purchase")
		return
	}

	applied, err := h.paymentService.ProcessPayment(c.Request.Context(), actor, &service.ProcessPaymentInput{
		CounterpartyID: counterpartyID,
		Direction:      direction,
		Amount:         req.Amount,
		Note:           req.Note,
	})
	if err != nil {
		// A partial write carries which invoices were touched before the
		// failure; the client needs those ids to reconcile.
		var partial *apperror.PartialWriteError
		if errors.As(err, &partial) {
			appErr := partial.AppError()
			c.JSON(appErr.Code, response.APIResponse{
				Success: false,
				Message: appErr.Message,
				Data: gin.H{
					"applied_invoice_ids": partial.AppliedInvoiceIDs,
					"failed_invoice_id":   partial.FailedInvoiceID,
				},
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment processed successfully", gin.H{
		"applied_invoice_ids": applied,
	})
}
