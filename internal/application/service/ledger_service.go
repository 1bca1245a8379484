package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// EntryType tells invoices and payments apart in a merged ledger
type EntryType string

const (
	EntryTypeInvoice EntryType = "invoice"
	EntryTypePayment EntryType = "payment"
)

// LedgerEntry is one line of a counterparty's chronological ledger.
// Invoices carry a direction, payments a payment type; the running
// balance is the position after this line.
type LedgerEntry struct {
	ID             uuid.UUID         `json:"id"`
	EntryType      EntryType         `json:"entry_type"`
	Direction      *enum.Direction   `json:"direction,omitempty"`
	PaymentType    *enum.PaymentType `json:"payment_type,omitempty"`
	Amount         decimal.Decimal   `json:"amount"`
	Notes          *string           `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	RunningBalance decimal.Decimal   `json:"running_balance"`
}

// CounterpartyLedger is the full reconstructed ledger of one
// counterparty plus its closing position.
type CounterpartyLedger struct {
	Counterparty   *entity.Counterparty `json:"counterparty"`
	Entries        []LedgerEntry        `json:"entries"`
	CurrentBalance decimal.Decimal      `json:"current_balance"`
}

// LedgerService reconstructs counterparty ledgers. Read-only: it never
// writes and is safe to run concurrently with payment processing (the
// result is then a consistent-enough snapshot, possibly slightly stale).
type LedgerService struct {
	counterpartyRepo repository.CounterpartyRepository
	invoiceRepo      repository.InvoiceRepository
	paymentRepo      repository.PaymentRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	counterpartyRepo repository.CounterpartyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *LedgerService {
	return &LedgerService{
		counterpartyRepo: counterpartyRepo,
		invoiceRepo:      invoiceRepo,
		paymentRepo:      paymentRepo,
	}
}

// BuildLedger merges all invoices and payments of a counterparty, both
// directions, into one timeline with a running balance. In practice a
// counterparty has invoices on a single side (customers sell-side,
// suppliers buy-side), so no direction filter is applied here.
//
// Sign convention: an invoice raises the balance by its total, a payment
// lowers it by its amount. A positive balance means the customer still
// owes us, or — on the supplier side — that we still owe the supplier.
// The closing running balance therefore always equals the sum of the
// live invoice balances.
func (s *LedgerService) BuildLedger(ctx context.Context, counterpartyID uuid.UUID) (*CounterpartyLedger, error) {
	counterparty, err := s.counterpartyRepo.GetByID(ctx, counterpartyID)
	if err != nil {
		return nil, err
	}
	if counterparty == nil {
		return nil, apperror.NewNotFoundError("Counterparty")
	}

	invoices, err := s.invoiceRepo.ListByCounterparty(ctx, counterpartyID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByCounterparty(ctx, counterpartyID)
	if err != nil {
		return nil, err
	}

	entries := make([]LedgerEntry, 0, len(invoices)+len(payments))
	for i := range invoices {
		direction := invoices[i].Direction
		entries = append(entries, LedgerEntry{
			ID:        invoices[i].ID,
			EntryType: EntryTypeInvoice,
			Direction: &direction,
			Amount:    invoices[i].TotalAmount,
			Notes:     invoices[i].Notes,
			CreatedAt: invoices[i].CreatedAt,
		})
	}
	for i := range payments {
		paymentType := payments[i].PaymentType
		entries = append(entries, LedgerEntry{
			ID:          payments[i].ID,
			EntryType:   EntryTypePayment,
			PaymentType: &paymentType,
			Amount:      payments[i].Amount,
			Notes:       payments[i].Notes,
			CreatedAt:   payments[i].CreatedAt,
		})
	}

	// Chronological, with the id as tie-break so entries sharing a
	// timestamp come out in the same order on every call.
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].CreatedAt.Equal(entries[b].CreatedAt) {
			return entries[a].ID.String() < entries[b].ID.String()
		}
		return entries[a].CreatedAt.Before(entries[b].CreatedAt)
	})

	balance := decimal.Zero
	for i := range entries {
		if entries[i].EntryType == EntryTypeInvoice {
			balance = balance.Add(entries[i].Amount)
		} else {
			balance = balance.Sub(entries[i].Amount)
		}
		entries[i].RunningBalance = balance
	}

	return &CounterpartyLedger{
		Counterparty:   counterparty,
		Entries:        entries,
		CurrentBalance: balance,
	}, nil
}
