package service

import (
	"context"

	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardStats bundles the figures shown on the landing screen. The
// receivable and payable totals come straight from unpaid invoice
// balances, never from a stored running total.
type DashboardStats struct {
	TotalCustomers  int64           `json:"total_customers"`
	TotalSuppliers  int64           `json:"total_suppliers"`
	TotalProducts   int64           `json:"total_products"`
	TotalInvoices   int64           `json:"total_invoices"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
}

// DashboardService aggregates headline figures
type DashboardService struct {
	counterpartyRepo repository.CounterpartyRepository
	productRepo      repository.ProductRepository
	invoiceRepo      repository.InvoiceRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	counterpartyRepo repository.CounterpartyRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) *DashboardService {
	return &DashboardService{
		counterpartyRepo: counterpartyRepo,
		productRepo:      productRepo,
		invoiceRepo:      invoiceRepo,
	}
}

// GetStats collects all dashboard figures
func (s *DashboardService) GetStats(ctx context.Context, actor entity.ActingUser) (*DashboardStats, error) {
	customers, err := s.counterpartyRepo.CountByType(ctx, enum.CounterpartyTypeCustomer)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.counterpartyRepo.CountByType(ctx, enum.CounterpartyTypeSupplier)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	receivable, err := s.invoiceRepo.OutstandingTotal(ctx, enum.DirectionSale)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalCustomers:  customers,
		TotalSuppliers:  suppliers,
		TotalProducts:   products,
		TotalInvoices:   invoices,
		TotalReceivable: receivable,
		TotalPayable:    decimal.Zero,
	}

	// Payables are a purchase-side concern, shown to admins only.
	if actor.IsAdmin() {
		payable, err := s.invoiceRepo.OutstandingTotal(ctx, enum.DirectionPurchase)
		if err != nil {
			return nil, err
		}
		stats.TotalPayable = payable
	}

	return stats, nil
}
