package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/apperror"
	"github.com/kogello/mazao-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(ctx context.Context, product *entity.Product) error {
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type invoiceFixture struct {
	*fixture
	productRepo *memProductRepo
	invoices    *InvoiceService
	product     *entity.Product
}

func newInvoiceFixture(cpType enum.CounterpartyType) *invoiceFixture {
	f := newFixture(cpType)
	productRepo := newMemProductRepo()
	product := &entity.Product{ID: uuid.New(), Name: "Eggs"}
	productRepo.products[product.ID] = product

	return &invoiceFixture{
		fixture:     f,
		productRepo: productRepo,
		invoices: NewInvoiceService(
			f.invoiceRepo, f.paymentRepo, f.cpRepo, productRepo, &memTxManager{store: f.store}),
		product: product,
	}
}

func TestCreateInvoice_TotalsAndInitialPayment(t *testing.T) {
	f := newInvoiceFixture(enum.CounterpartyTypeCustomer)
	actor := f.actor(enum.RoleSalesman)

	invoice, err := f.invoices.CreateInvoice(context.Background(), actor, &CreateInvoiceInput{
		Direction:      enum.DirectionSale,
		CounterpartyID: f.counterparty.ID,
		Items: []InvoiceItemInput{
			{ProductID: f.product.ID, Unit: enum.UnitTray, Quantity: decimal.RequireFromString("10"), UnitPrice: decimal.RequireFromString("360.00")},
			{ProductID: f.product.ID, Unit: enum.UnitKg, Quantity: decimal.RequireFromString("2.5"), UnitPrice: decimal.RequireFromString("180.00")},
		},
		PaidAmount: decimal.RequireFromString("1000.00"),
	})
	require.NoError(t, err)

	assert.True(t, invoice.TotalAmount.Equal(decimal.RequireFromString("4050.00")), "got total %s", invoice.TotalAmount)
	assert.True(t, invoice.PaidAmount.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, invoice.Balance().Equal(decimal.RequireFromString("3050.00")))
	assert.Equal(t, *actor.BranchID, invoice.BranchID)

	require.Len(t, f.store.payments, 1, "initial payment recorded alongside the invoice")
	payment := f.store.payments[0]
	assert.Equal(t, invoice.ID, payment.InvoiceID)
	assert.True(t, payment.Amount.Equal(decimal.RequireFromString("1000.00")))
	assert.Equal(t, enum.PaymentTypeCredit, payment.PaymentType)
	assert.Equal(t, invoice.BranchID, payment.BranchID)
}

func TestCreateInvoice_NoInitialPaymentMeansNoPaymentRow(t *testing.T) {
	f := newInvoiceFixture(enum.CounterpartyTypeCustomer)

	invoice, err := f.invoices.CreateInvoice(context.Background(), f.actor(enum.RoleSalesman), &CreateInvoiceInput{
		Direction:      enum.DirectionSale,
		CounterpartyID: f.counterparty.ID,
		Items: []InvoiceItemInput{
			{ProductID: f.product.ID, Unit: enum.UnitCarton, Quantity: decimal.RequireFromString("3"), UnitPrice: decimal.RequireFromString("1200.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, invoice.PaidAmount.IsZero())
	assert.Empty(t, f.store.payments)
}

func TestCreateInvoice_PurchaseIsAdminOnly(t *testing.T) {
	f := newInvoiceFixture(enum.CounterpartyTypeSupplier)
	input := &CreateInvoiceInput{
		Direction:      enum.DirectionPurchase,
		CounterpartyID: f.counterparty.ID,
		Items: []InvoiceItemInput{
			{ProductID: f.product.ID, Unit: enum.UnitKg, Quantity: decimal.RequireFromString("50"), UnitPrice: decimal.RequireFromString("150.00")},
		},
	}

	_, err := f.invoices.CreateInvoice(context.Background(), f.actor(enum.RoleSalesman), input)
	require.ErrorIs(t, err, apperror.ErrForbidden)

	invoice, err := f.invoices.CreateInvoice(context.Background(), f.actor(enum.RoleAdmin), input)
	require.NoError(t, err)
	assert.Equal(t, enum.DirectionPurchase, invoice.Direction)
}

func TestCreateInvoice_RejectsActorWithoutBranch(t *testing.T) {
	f := newInvoiceFixture(enum.CounterpartyTypeCustomer)
	actor := entity.ActingUser{ID: uuid.New(), Role: enum.RoleAdmin}

	_, err := f.invoices.CreateInvoice(context.Background(), actor, &CreateInvoiceInput{
		Direction:      enum.DirectionSale,
		CounterpartyID: f.counterparty.ID,
		Items: []InvoiceItemInput{
			{ProductID: f.product.ID, Unit: enum.UnitKg, Quantity: decimal.RequireFromString("1"), UnitPrice: decimal.RequireFromString("100.00")},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "User has no branch assigned", apperror.GetAppError(err).Message)
}

func TestCreateInvoice_ValidatesInput(t *testing.T) {
	f := newInvoiceFixture(enum.CounterpartyTypeCustomer)
	actor := f.actor(enum.RoleSalesman)

	tests := []struct {
		name  string
		input *CreateInvoiceInput
		code  int
	}{
		{
			name: "no items",
			input: &CreateInvoiceInput{
				Direction:      enum.DirectionSale,
				CounterpartyID: f.counterparty.ID,
			},
			code: 422,
		},
		{
			name: "zero quantity",
			input: &CreateInvoiceInput{
				Direction:      enum.DirectionSale,
				CounterpartyID: f.counterparty.ID,
				Items: []InvoiceItemInput{
					{ProductID: f.product.ID, Unit: enum.UnitKg, Quantity: decimal.Zero, UnitPrice: decimal.RequireFromString("100.00")},
				},
			},
			code: 422,
		},
		{
			name: "unknown product",
			input: &CreateInvoiceInput{
				Direction:      enum.DirectionSale,
				CounterpartyID: f.counterparty.ID,
				Items: []InvoiceItemInput{
					{ProductID: uuid.New(), Unit: enum.UnitKg, Quantity: decimal.RequireFromString("1"), UnitPrice: decimal.RequireFromString("100.00")},
				},
			},
			code: 404,
		},
		{
			name: "paid amount above total",
			input: &CreateInvoiceInput{
				Direction:      enum.DirectionSale,
				CounterpartyID: f.counterparty.ID,
				Items: []InvoiceItemInput{
					{ProductID: f.product.ID, Unit: enum.UnitKg, Quantity: decimal.RequireFromString("1"), UnitPrice: decimal.RequireFromString("100.00")},
				},
				PaidAmount: decimal.RequireFromString("100.01"),
			},
			code: 422,
		},
		{
			name: "direction mismatching counterparty",
			input: &CreateInvoiceInput{
				Direction:      enum.DirectionPurchase,
				CounterpartyID: f.counterparty.ID,
				Items: []InvoiceItemInput{
					{ProductID: f.product.ID, Unit: enum.UnitKg, Quantity: decimal.RequireFromString("1"), UnitPrice: decimal.RequireFromString("100.00")},
				},
			},
			code: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actorForCase := actor
			if tt.input.Direction == enum.DirectionPurchase {
				actorForCase = f.actor(enum.RoleAdmin)
			}
			_, err := f.invoices.CreateInvoice(context.Background(), actorForCase, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.GetAppError(err).Code)
		})
	}

	assert.Empty(t, f.store.invoices, "no invoice may survive a rejected create")
	assert.Empty(t, f.store.payments)
}

func TestListInvoices_SalesmenScopedToOwnBranch(t *testing.T) {
	f := newInvoiceFixture(enum.CounterpartyTypeCustomer)
	salesman := f.actor(enum.RoleSalesman)

	mine := f.addInvoice("100.00", "0", 2*time.Hour)
	mine.BranchID = *salesman.BranchID
	f.addInvoice("200.00", "0", time.Hour) // other branch

	result, err := f.invoices.ListInvoices(context.Background(), salesman, &repository.InvoiceFilterParams{
		Pagination: pagination.PaginationParams{Page: 1, PerPage: 15},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, mine.ID, result.Items[0].ID)

	admin := f.actor(enum.RoleAdmin)
	all, err := f.invoices.ListInvoices(context.Background(), admin, &repository.InvoiceFilterParams{
		Pagination: pagination.PaginationParams{Page: 1, PerPage: 15},
	})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}
