package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) addPayment(invoice *entity.Invoice, amount string, age time.Duration) *entity.Payment {
	p := entity.Payment{
		ID:             uuid.New(),
		CounterpartyID: f.counterparty.ID,
		InvoiceID:      invoice.ID,
		BranchID:       invoice.BranchID,
		Amount:         decimal.RequireFromString(amount),
		PaymentType:    invoice.Direction.PaymentType(),
		CreatedAt:      time.Now().Add(-age),
	}
	f.store.payments = append(f.store.payments, p)
	return &f.store.payments[len(f.store.payments)-1]
}

func TestBuildLedger_ChronologicalWithRunningBalance(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	first := f.addInvoice("100.00", "100.00", 72*time.Hour)
	f.addPayment(first, "100.00", 48*time.Hour)
	second := f.addInvoice("50.00", "20.00", 24*time.Hour)
	f.addPayment(second, "20.00", 12*time.Hour)

	ledger, err := f.ledger.BuildLedger(context.Background(), f.counterparty.ID)
	require.NoError(t, err)

	require.Len(t, ledger.Entries, 4)
	assert.Equal(t, EntryTypeInvoice, ledger.Entries[0].EntryType)
	assert.Equal(t, EntryTypePayment, ledger.Entries[1].EntryType)
	assert.Equal(t, EntryTypeInvoice, ledger.Entries[2].EntryType)
	assert.Equal(t, EntryTypePayment, ledger.Entries[3].EntryType)

	want := []string{"100.00", "0.00", "50.00", "30.00"}
	for i, balance := range want {
		assert.True(t, ledger.Entries[i].RunningBalance.Equal(decimal.RequireFromString(balance)),
			"entry %d: got running balance %s, want %s", i, ledger.Entries[i].RunningBalance, balance)
	}
	assert.True(t, ledger.CurrentBalance.Equal(decimal.RequireFromString("30.00")))
}

func TestBuildLedger_ClosingBalanceMatchesOutstanding(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	first := f.addInvoice("120.00", "0", 72*time.Hour)
	f.addInvoice("45.50", "0", 48*time.Hour)

	// Settle the first invoice through the processor so ledger rows and
	// paid amounts move together.
	_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), &ProcessPaymentInput{
		CounterpartyID: f.counterparty.ID,
		Direction:      enum.DirectionSale,
		Amount:         decimal.RequireFromString("120.00"),
	})
	require.NoError(t, err)
	require.True(t, f.store.invoices[first.ID].Settled())

	ledger, err := f.ledger.BuildLedger(context.Background(), f.counterparty.ID)
	require.NoError(t, err)

	outstanding, err := f.invoiceRepo.OutstandingForCounterparty(context.Background(), f.counterparty.ID, enum.DirectionSale)
	require.NoError(t, err)
	assert.True(t, ledger.CurrentBalance.Equal(outstanding),
		"ledger closing balance %s must equal summed invoice balances %s", ledger.CurrentBalance, outstanding)
	assert.True(t, ledger.CurrentBalance.Equal(decimal.RequireFromString("45.50")))
}

func TestBuildLedger_TieBreakIsStable(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)

	// Three invoices sharing one timestamp; order must come out by id on
	// every rebuild.
	ts := time.Now().Add(-24 * time.Hour)
	for _, total := range []string{"10.00", "20.00", "30.00"} {
		inv := &entity.Invoice{
			ID:             uuid.New(),
			CounterpartyID: f.counterparty.ID,
			BranchID:       uuid.New(),
			Direction:      enum.DirectionSale,
			TotalAmount:    decimal.RequireFromString(total),
			PaidAmount:     decimal.Zero,
			CreatedAt:      ts,
		}
		f.store.invoices[inv.ID] = inv
	}

	first, err := f.ledger.BuildLedger(context.Background(), f.counterparty.ID)
	require.NoError(t, err)
	for i := 1; i < len(first.Entries); i++ {
		assert.Less(t, first.Entries[i-1].ID.String(), first.Entries[i].ID.String())
	}

	for i := 0; i < 5; i++ {
		again, err := f.ledger.BuildLedger(context.Background(), f.counterparty.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Entries, again.Entries)
	}
}

func TestBuildLedger_EmptyHistory(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)

	ledger, err := f.ledger.BuildLedger(context.Background(), f.counterparty.ID)
	require.NoError(t, err)

	assert.Empty(t, ledger.Entries)
	assert.True(t, ledger.CurrentBalance.IsZero())
	assert.Equal(t, f.counterparty.ID, ledger.Counterparty.ID)
}

func TestBuildLedger_UnknownCounterparty(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)

	_, err := f.ledger.BuildLedger(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestBuildLedger_EntryMetadata(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeSupplier)
	invoice := f.addInvoice("300.00", "100.00", 48*time.Hour)
	f.addPayment(invoice, "100.00", 24*time.Hour)

	ledger, err := f.ledger.BuildLedger(context.Background(), f.counterparty.ID)
	require.NoError(t, err)
	require.Len(t, ledger.Entries, 2)

	invoiceEntry := ledger.Entries[0]
	require.NotNil(t, invoiceEntry.Direction)
	assert.Equal(t, enum.DirectionPurchase, *invoiceEntry.Direction)
	assert.Nil(t, invoiceEntry.PaymentType)

	paymentEntry := ledger.Entries[1]
	require.NotNil(t, paymentEntry.PaymentType)
	assert.Equal(t, enum.PaymentTypeDebit, *paymentEntry.PaymentType)
	assert.Nil(t, paymentEntry.Direction)

	assert.True(t, ledger.CurrentBalance.Equal(decimal.RequireFromString("200.00")))
}
