package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/apperror"
	"github.com/kogello/mazao-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceService creates and reads sale/purchase invoices. Totals are
// fixed at creation; later paid-amount changes go through the payment
// service only.
type InvoiceService struct {
	invoiceRepo      repository.InvoiceRepository
	paymentRepo      repository.PaymentRepository
	counterpartyRepo repository.CounterpartyRepository
	productRepo      repository.ProductRepository
	tx               repository.TxManager
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	counterpartyRepo repository.CounterpartyRepository,
	productRepo repository.ProductRepository,
	tx repository.TxManager,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:      invoiceRepo,
		paymentRepo:      paymentRepo,
		counterpartyRepo: counterpartyRepo,
		productRepo:      productRepo,
		tx:               tx,
	}
}

// InvoiceItemInput represents one line of a new invoice
type InvoiceItemInput struct {
	ProductID uuid.UUID
	Unit      enum.Unit
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	Direction      enum.Direction
	CounterpartyID uuid.UUID
	Items          []InvoiceItemInput
	PaidAmount     decimal.Decimal
	Notes          *string
}

// CreateInvoice records a new transaction with its items and, when part
// of it is paid on the spot, the initial payment row. Header, items and
// payment land in one transaction: there is no window where an invoice
// exists without its lines.
func (s *InvoiceService) CreateInvoice(ctx context.Context, actor entity.ActingUser, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if input.Direction == enum.DirectionPurchase && !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if actor.BranchID == nil {
		return nil, apperror.NewBadRequestError("User has no branch assigned")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "at least one item is required"},
		})
	}

	counterparty, err := s.counterpartyRepo.GetByID(ctx, input.CounterpartyID)
	if err != nil {
		return nil, err
	}
	if counterparty == nil {
		return nil, apperror.NewNotFoundError("Counterparty")
	}
	if counterparty.Type.Direction() != input.Direction {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("A %s invoice cannot be issued against a %s", input.Direction, counterparty.Type))
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	totalAmount := decimal.Zero
	items := make([]entity.InvoiceItem, 0, len(input.Items))
	for _, item := range input.Items {
		if _, exists := productMap[item.ProductID]; !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !item.Quantity.IsPositive() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "must be greater than zero"},
			})
		}
		if item.UnitPrice.IsNegative() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "unit_price", Message: "must not be negative"},
			})
		}

		amount := item.Quantity.Mul(item.UnitPrice).Round(2)
		totalAmount = totalAmount.Add(amount)
		items = append(items, entity.InvoiceItem{
			ProductID: item.ProductID,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    amount,
		})
	}

	if input.PaidAmount.IsNegative() || input.PaidAmount.GreaterThan(totalAmount) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "paid_amount", Message: "must be between zero and the invoice total"},
		})
	}

	invoice := &entity.Invoice{
		CounterpartyID: input.CounterpartyID,
		BranchID:       *actor.BranchID,
		Direction:      input.Direction,
		TotalAmount:    totalAmount,
		PaidAmount:     input.PaidAmount,
		Notes:          input.Notes,
		CreatedByID:    &actor.ID,
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Create(txCtx, invoice); err != nil {
			return err
		}

		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if err := s.invoiceRepo.CreateItems(txCtx, items); err != nil {
			return err
		}

		if input.PaidAmount.IsPositive() {
			note := fmt.Sprintf("Initial payment for %s #%.8s", input.Direction, invoice.ID.String())
			return s.paymentRepo.Create(txCtx, &entity.Payment{
				CounterpartyID: input.CounterpartyID,
				InvoiceID:      invoice.ID,
				BranchID:       invoice.BranchID,
				Amount:         input.PaidAmount,
				PaymentType:    input.Direction.PaymentType(),
				Notes:          &note,
				CreatedByID:    &actor.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering. Salesmen only see their
// own branch; admins see every branch.
func (s *InvoiceService) ListInvoices(ctx context.Context, actor entity.ActingUser, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if !actor.IsAdmin() {
		if actor.BranchID == nil {
			return nil, apperror.NewBadRequestError("User has no branch assigned")
		}
		params.BranchID = actor.BranchID
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}
