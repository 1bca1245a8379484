package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/apperror"
	"github.com/kogello/mazao-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CounterpartyService handles customer and supplier management.
// Supplier records are admin-only on the write side.
type CounterpartyService struct {
	counterpartyRepo repository.CounterpartyRepository
	invoiceRepo      repository.InvoiceRepository
	paymentRepo      repository.PaymentRepository
}

// NewCounterpartyService creates a new counterparty service
func NewCounterpartyService(
	counterpartyRepo repository.CounterpartyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *CounterpartyService {
	return &CounterpartyService{
		counterpartyRepo: counterpartyRepo,
		invoiceRepo:      invoiceRepo,
		paymentRepo:      paymentRepo,
	}
}

// CounterpartyInput represents create/update input for a counterparty
type CounterpartyInput struct {
	Name     string
	Type     enum.CounterpartyType
	Phone    *string
	Location *string
	Notes    *string
}

// CounterpartyDetail couples a counterparty with its derived balance
type CounterpartyDetail struct {
	Counterparty       *entity.Counterparty `json:"counterparty"`
	OutstandingBalance decimal.Decimal      `json:"outstanding_balance"`
}

func (s *CounterpartyService) checkWriteAccess(actor entity.ActingUser, cpType enum.CounterpartyType) error {
	if cpType == enum.CounterpartyTypeSupplier && !actor.IsAdmin() {
		return apperror.ErrForbidden
	}
	return nil
}

// CreateCounterparty registers a new customer or supplier
func (s *CounterpartyService) CreateCounterparty(ctx context.Context, actor entity.ActingUser, input *CounterpartyInput) (*entity.Counterparty, error) {
	if err := s.checkWriteAccess(actor, input.Type); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}

	counterparty := &entity.Counterparty{
		Name:     input.Name,
		Type:     input.Type,
		Phone:    input.Phone,
		Location: input.Location,
		Notes:    input.Notes,
	}
	if err := s.counterpartyRepo.Create(ctx, counterparty); err != nil {
		return nil, err
	}
	return counterparty, nil
}

// GetCounterparty retrieves a counterparty with its outstanding balance
func (s *CounterpartyService) GetCounterparty(ctx context.Context, id uuid.UUID) (*CounterpartyDetail, error) {
	counterparty, err := s.counterpartyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if counterparty == nil {
		return nil, apperror.NewNotFoundError("Counterparty")
	}

	outstanding, err := s.invoiceRepo.OutstandingForCounterparty(ctx, id, counterparty.Type.Direction())
	if err != nil {
		return nil, err
	}

	return &CounterpartyDetail{
		Counterparty:       counterparty,
		OutstandingBalance: outstanding,
	}, nil
}

// UpdateCounterparty updates contact details. The type is fixed at
// creation: a customer cannot become a supplier once trades exist.
func (s *CounterpartyService) UpdateCounterparty(ctx context.Context, actor entity.ActingUser, id uuid.UUID, input *CounterpartyInput) (*entity.Counterparty, error) {
	counterparty, err := s.counterpartyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if counterparty == nil {
		return nil, apperror.NewNotFoundError("Counterparty")
	}
	if err := s.checkWriteAccess(actor, counterparty.Type); err != nil {
		return nil, err
	}
	if input.Type != "" && input.Type != counterparty.Type {
		return nil, apperror.NewBadRequestError("Counterparty type cannot be changed")
	}

	if input.Name != "" {
		counterparty.Name = input.Name
	}
	if input.Phone != nil {
		counterparty.Phone = input.Phone
	}
	if input.Location != nil {
		counterparty.Location = input.Location
	}
	if input.Notes != nil {
		counterparty.Notes = input.Notes
	}

	if err := s.counterpartyRepo.Update(ctx, counterparty); err != nil {
		return nil, err
	}
	return counterparty, nil
}

// DeleteCounterparty removes a counterparty. Refused while unpaid
// invoices or payment history exist, so the ledger stays reconstructable.
func (s *CounterpartyService) DeleteCounterparty(ctx context.Context, actor entity.ActingUser, id uuid.UUID) error {
	counterparty, err := s.counterpartyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if counterparty == nil {
		return apperror.NewNotFoundError("Counterparty")
	}
	if err := s.checkWriteAccess(actor, counterparty.Type); err != nil {
		return err
	}

	outstanding, err := s.invoiceRepo.OutstandingForCounterparty(ctx, id, counterparty.Type.Direction())
	if err != nil {
		return err
	}
	if outstanding.IsPositive() {
		return apperror.NewConflictError("Counterparty has unpaid invoices")
	}

	hasPayments, err := s.paymentRepo.ExistsForCounterparty(ctx, id)
	if err != nil {
		return err
	}
	if hasPayments {
		return apperror.NewConflictError("Counterparty has payment history")
	}

	return s.counterpartyRepo.Delete(ctx, id)
}

// ListCounterparties lists counterparties with optional search and type filter
func (s *CounterpartyService) ListCounterparties(ctx context.Context, params *pagination.PaginationParams, search string, cpType *enum.CounterpartyType) (*pagination.PaginatedResult[entity.Counterparty], error) {
	params.Validate()

	counterparties, total, err := s.counterpartyRepo.List(ctx, params, search, cpType)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(counterparties, pag), nil
}
