package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// In-memory repositories backing the service tests. They reproduce the
// ordering and not-found conventions of the real postgres-backed ones:
// (nil, nil) for missing rows, unpaid invoices oldest first.

type memStore struct {
	invoices       map[uuid.UUID]*entity.Invoice
	payments       []entity.Payment
	counterparties map[uuid.UUID]*entity.Counterparty
}

func newMemStore() *memStore {
	return &memStore{
		invoices:       make(map[uuid.UUID]*entity.Invoice),
		counterparties: make(map[uuid.UUID]*entity.Counterparty),
	}
}

func (m *memStore) snapshot() *memStore {
	s := newMemStore()
	for id, inv := range m.invoices {
		cp := *inv
		s.invoices[id] = &cp
	}
	s.payments = append([]entity.Payment(nil), m.payments...)
	for id, c := range m.counterparties {
		cp := *c
		s.counterparties[id] = &cp
	}
	return s
}

func (m *memStore) restore(s *memStore) {
	m.invoices = s.invoices
	m.payments = s.payments
	m.counterparties = s.counterparties
}

// memTxManager snapshots the store before running fn and restores it
// when fn fails, mirroring a database rollback.
type memTxManager struct {
	store *memStore
}

func (t *memTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	before := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(before)
		return err
	}
	return nil
}

type memInvoiceRepo struct {
	store *memStore

	// failUpdateFor makes UpdatePaidAmount fail for one invoice id, to
	// exercise the mid-sequence failure path.
	failUpdateFor uuid.UUID
}

func (r *memInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	cp := *invoice
	r.store.invoices[invoice.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateItems(ctx context.Context, items []entity.InvoiceItem) error {
	return nil
}

func (r *memInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.store.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *memInvoiceRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *memInvoiceRepo) UpdatePaidAmount(ctx context.Context, id uuid.UUID, paidAmount decimal.Decimal) error {
	if id == r.failUpdateFor {
		return fmt.Errorf("simulated write failure for invoice %s", id)
	}
	inv, ok := r.store.invoices[id]
	if !ok {
		return fmt.Errorf("invoice %s not found", id)
	}
	inv.PaidAmount = paidAmount
	return nil
}

func (r *memInvoiceRepo) ListUnpaid(ctx context.Context, counterpartyID uuid.UUID, direction enum.Direction) ([]entity.Invoice, error) {
	var out []entity.Invoice
	for _, inv := range r.store.invoices {
		if inv.CounterpartyID == counterpartyID && inv.Direction == direction && inv.Balance().IsPositive() {
			out = append(out, *inv)
		}
	}
	sortLedgerOrder(out)
	return out, nil
}

func (r *memInvoiceRepo) ListByCounterparty(ctx context.Context, counterpartyID uuid.UUID) ([]entity.Invoice, error) {
	var out []entity.Invoice
	for _, inv := range r.store.invoices {
		if inv.CounterpartyID == counterpartyID {
			out = append(out, *inv)
		}
	}
	sortLedgerOrder(out)
	return out, nil
}

func (r *memInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.store.invoices {
		if params.CounterpartyID != nil && inv.CounterpartyID != *params.CounterpartyID {
			continue
		}
		if params.Direction != nil && inv.Direction != *params.Direction {
			continue
		}
		if params.BranchID != nil && inv.BranchID != *params.BranchID {
			continue
		}
		out = append(out, *inv)
	}
	sortLedgerOrder(out)
	return out, int64(len(out)), nil
}

func (r *memInvoiceRepo) OutstandingForCounterparty(ctx context.Context, counterpartyID uuid.UUID, direction enum.Direction) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range r.store.invoices {
		if inv.CounterpartyID == counterpartyID && inv.Direction == direction && inv.Balance().IsPositive() {
			total = total.Add(inv.Balance())
		}
	}
	return total, nil
}

func (r *memInvoiceRepo) OutstandingTotal(ctx context.Context, direction enum.Direction) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range r.store.invoices {
		if inv.Direction == direction && inv.Balance().IsPositive() {
			total = total.Add(inv.Balance())
		}
	}
	return total, nil
}

func (r *memInvoiceRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.store.invoices)), nil
}

func sortLedgerOrder(invoices []entity.Invoice) {
	sort.SliceStable(invoices, func(a, b int) bool {
		if invoices[a].CreatedAt.Equal(invoices[b].CreatedAt) {
			return invoices[a].ID.String() < invoices[b].ID.String()
		}
		return invoices[a].CreatedAt.Before(invoices[b].CreatedAt)
	})
}

type memPaymentRepo struct {
	store *memStore
}

func (r *memPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	r.store.payments = append(r.store.payments, *payment)
	return nil
}

func (r *memPaymentRepo) ListByCounterparty(ctx context.Context, counterpartyID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.store.payments {
		if p.CounterpartyID == counterpartyID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].ID.String() < out[b].ID.String()
		}
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out, nil
}

func (r *memPaymentRepo) ExistsForCounterparty(ctx context.Context, counterpartyID uuid.UUID) (bool, error) {
	for _, p := range r.store.payments {
		if p.CounterpartyID == counterpartyID {
			return true, nil
		}
	}
	return false, nil
}

type memCounterpartyRepo struct {
	store *memStore
}

func (r *memCounterpartyRepo) Create(ctx context.Context, counterparty *entity.Counterparty) error {
	if counterparty.ID == uuid.Nil {
		counterparty.ID = uuid.New()
	}
	cp := *counterparty
	r.store.counterparties[counterparty.ID] = &cp
	return nil
}

func (r *memCounterpartyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Counterparty, error) {
	c, ok := r.store.counterparties[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCounterpartyRepo) Update(ctx context.Context, counterparty *entity.Counterparty) error {
	cp := *counterparty
	r.store.counterparties[counterparty.ID] = &cp
	return nil
}

func (r *memCounterpartyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.counterparties, id)
	return nil
}

func (r *memCounterpartyRepo) List(ctx context.Context, params *pagination.PaginationParams, search string, cpType *enum.CounterpartyType) ([]entity.Counterparty, int64, error) {
	var out []entity.Counterparty
	for _, c := range r.store.counterparties {
		if cpType != nil && c.Type != *cpType {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *memCounterpartyRepo) CountByType(ctx context.Context, cpType enum.CounterpartyType) (int64, error) {
	var n int64
	for _, c := range r.store.counterparties {
		if c.Type == cpType {
			n++
		}
	}
	return n, nil
}

type noopNotifier struct {
	changed []uuid.UUID
}

func (n *noopNotifier) LedgerChanged(ctx context.Context, counterpartyID uuid.UUID) {
	n.changed = append(n.changed, counterpartyID)
}

// fixture wires a payment and ledger service over one shared store.
type fixture struct {
	store        *memStore
	invoiceRepo  *memInvoiceRepo
	paymentRepo  *memPaymentRepo
	cpRepo       *memCounterpartyRepo
	notifier     *noopNotifier
	payments     *PaymentService
	ledger       *LedgerService
	counterparty *entity.Counterparty
}

func newFixture(cpType enum.CounterpartyType) *fixture {
	store := newMemStore()
	invoiceRepo := &memInvoiceRepo{store: store}
	paymentRepo := &memPaymentRepo{store: store}
	cpRepo := &memCounterpartyRepo{store: store}
	notifier := &noopNotifier{}

	counterparty := &entity.Counterparty{
		ID:        uuid.New(),
		Name:      "Mama Njeri Groceries",
		Type:      cpType,
		CreatedAt: time.Now(),
	}
	store.counterparties[counterparty.ID] = counterparty

	return &fixture{
		store:       store,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		cpRepo:      cpRepo,
		notifier:    notifier,
		payments: NewPaymentService(
			invoiceRepo, paymentRepo, cpRepo, &memTxManager{store: store}, notifier),
		ledger:       NewLedgerService(cpRepo, invoiceRepo, paymentRepo),
		counterparty: counterparty,
	}
}

// addInvoice seeds an invoice aged by the given offset so created-at
// ordering in tests is explicit.
func (f *fixture) addInvoice(total, paid string, age time.Duration) *entity.Invoice {
	inv := &entity.Invoice{
		ID:             uuid.New(),
		CounterpartyID: f.counterparty.ID,
		BranchID:       uuid.New(),
		Direction:      f.counterparty.Type.Direction(),
		TotalAmount:    decimal.RequireFromString(total),
		PaidAmount:     decimal.RequireFromString(paid),
		CreatedAt:      time.Now().Add(-age),
	}
	f.store.invoices[inv.ID] = inv
	return inv
}

func (f *fixture) actor(role enum.Role) entity.ActingUser {
	branchID := uuid.New()
	return entity.ActingUser{ID: uuid.New(), Role: role, BranchID: &branchID}
}
