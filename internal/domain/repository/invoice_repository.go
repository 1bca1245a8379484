package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceFilterParams holds filters for invoice listing
type InvoiceFilterParams struct {
	Pagination     pagination.PaginationParams
	Direction      *enum.Direction
	CounterpartyID *uuid.UUID
	BranchID       *uuid.UUID
}

// InvoiceRepository defines the interface for invoice data operations.
// PaidAmount is written through UpdatePaidAmount only; there is no way
// to write a balance because none is stored.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItems(ctx context.Context, items []entity.InvoiceItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetByIDForUpdate re-reads an invoice under a row lock. Only valid
	// inside a TxManager transaction; the payment processor uses it so
	// concurrent payments cannot base their update on a stale paid amount.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	UpdatePaidAmount(ctx context.Context, id uuid.UUID, paidAmount decimal.Decimal) error
	// ListUnpaid returns invoices with a positive balance for one
	// counterparty and direction, oldest first (created_at, then id, so
	// ties are deterministic).
	ListUnpaid(ctx context.Context, counterpartyID uuid.UUID, direction enum.Direction) ([]entity.Invoice, error)
	// ListByCounterparty returns every invoice of a counterparty, both
	// directions, in ledger order (created_at ASC, id ASC).
	ListByCounterparty(ctx context.Context, counterpartyID uuid.UUID) ([]entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// OutstandingForCounterparty sums the unpaid balances of one
	// counterparty and direction straight from the invoice rows.
	OutstandingForCounterparty(ctx context.Context, counterpartyID uuid.UUID, direction enum.Direction) (decimal.Decimal, error)
	// OutstandingTotal sums unpaid balances across all counterparties of
	// one direction (dashboard receivable/payable figures).
	OutstandingTotal(ctx context.Context, direction enum.Direction) (decimal.Decimal, error)
	Count(ctx context.Context) (int64, error)
}
