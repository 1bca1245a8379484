package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	domainRepo "github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return dbFrom(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) CreateItems(ctx context.Context, items []entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).
		Preload("Items").
		Preload("Items.Product").
		Preload("Counterparty").
		Preload("Branch").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

// GetByIDForUpdate takes a FOR UPDATE row lock, so it must run inside a
// transaction opened by the TxManager.
func (r *invoiceRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) UpdatePaidAmount(ctx context.Context, id uuid.UUID, paidAmount decimal.Decimal) error {
	return dbFrom(ctx, r.db).
		Model(&entity.Invoice{}).
		Where("id = ?", id).
		Update("paid_amount", paidAmount).Error
}

func (r *invoiceRepository) ListUnpaid(ctx context.Context, counterpartyID uuid.UUID, direction enum.Direction) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := dbFrom(ctx, r.db).
		Where("counterparty_id = ? AND direction = ?", counterpartyID, direction).
		Where("total_amount - paid_amount > 0").
		Order("created_at ASC, id ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListByCounterparty(ctx context.Context, counterpartyID uuid.UUID) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := dbFrom(ctx, r.db).
		Where("counterparty_id = ?", counterpartyID).
		Order("created_at ASC, id ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Invoice{})
	if params.Direction != nil {
		query = query.Where("direction = ?", *params.Direction)
	}
	if params.CounterpartyID != nil {
		query = query.Where("counterparty_id = ?", *params.CounterpartyID)
	}
	if params.BranchID != nil {
		query = query.Where("branch_id = ?", *params.BranchID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.
		Preload("Counterparty").
		Preload("Branch").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) OutstandingForCounterparty(ctx context.Context, counterpartyID uuid.UUID, direction enum.Direction) (decimal.Decimal, error) {
	var outstanding decimal.Decimal
	err := dbFrom(ctx, r.db).
		Model(&entity.Invoice{}).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").
		Where("counterparty_id = ? AND direction = ?", counterpartyID, direction).
		Where("total_amount - paid_amount > 0").
		Scan(&outstanding).Error
	return outstanding, err
}

func (r *invoiceRepository) OutstandingTotal(ctx context.Context, direction enum.Direction) (decimal.Decimal, error) {
	var outstanding decimal.Decimal
	err := dbFrom(ctx, r.db).
		Model(&entity.Invoice{}).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").
		Where("direction = ?", direction).
		Where("total_amount - paid_amount > 0").
		Scan(&outstanding).Error
	return outstanding, err
}

func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Invoice{}).Count(&count).Error
	return count, err
}
