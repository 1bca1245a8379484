package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPayment_SettlesOldestFirst(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	oldest := f.addInvoice("100.00", "0", 48*time.Hour)
	newest := f.addInvoice("50.00", "0", 24*time.Hour)

	applied, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), &ProcessPaymentInput{
		CounterpartyID: f.counterparty.ID,
		Direction:      enum.DirectionSale,
		Amount:         decimal.RequireFromString("120.00"),
	})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{oldest.ID, newest.ID}, applied)

	assert.True(t, f.store.invoices[oldest.ID].Settled(), "oldest invoice should be fully settled")
	assert.True(t, f.store.invoices[newest.ID].PaidAmount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, f.store.invoices[newest.ID].Balance().Equal(decimal.RequireFromString("30.00")))

	require.Len(t, f.store.payments, 2, "one payment row per touched invoice")
	assert.Equal(t, oldest.ID, f.store.payments[0].InvoiceID)
	assert.True(t, f.store.payments[0].Amount.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, newest.ID, f.store.payments[1].InvoiceID)
	assert.True(t, f.store.payments[1].Amount.Equal(decimal.RequireFromString("20.00")))

	assert.Equal(t, []uuid.UUID{f.counterparty.ID}, f.notifier.changed)
}

func TestProcessPayment_PaymentRowsInheritInvoiceBranch(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	invoice := f.addInvoice("80.00", "0", time.Hour)
	actor := f.actor(enum.RoleSalesman)

	_, err := f.payments.ProcessPayment(context.Background(), actor, &ProcessPaymentInput{
		CounterpartyID: f.counterparty.ID,
		Direction:      enum.DirectionSale,
		Amount:         decimal.RequireFromString("80.00"),
	})
	require.NoError(t, err)

	require.Len(t, f.store.payments, 1)
	payment := f.store.payments[0]
	assert.Equal(t, invoice.BranchID, payment.BranchID, "branch comes from the invoice, not the actor")
	assert.NotEqual(t, *actor.BranchID, payment.BranchID)
	assert.Equal(t, enum.PaymentTypeCredit, payment.PaymentType)
	assert.Equal(t, actor.ID, *payment.CreatedByID)
	require.NotNil(t, payment.Notes)
	assert.Contains(t, *payment.Notes, "Payment for sale #")
}

func TestProcessPayment_PurchaseSideIsDebitAndAdminOnly(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeSupplier)
	f.addInvoice("200.00", "0", time.Hour)

	input := &ProcessPaymentInput{
		CounterpartyID: f.counterparty.ID,
		Direction:      enum.DirectionPurchase,
		Amount:         decimal.RequireFromString("200.00"),
	}

	_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), input)
	require.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Empty(t, f.store.payments, "rejected request must write nothing")

	applied, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleAdmin), input)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, enum.PaymentTypeDebit, f.store.payments[0].PaymentType)
}

func TestProcessPayment_DirectionMustMatchCounterpartyType(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	f.addInvoice("50.00", "0", time.Hour)

	_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleAdmin), &ProcessPaymentInput{
		CounterpartyID: f.counterparty.ID,
		Direction:      enum.DirectionPurchase,
		Amount:         decimal.RequireFromString("50.00"),
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Empty(t, f.store.payments)
}

func TestProcessPayment_OverpaymentWritesNothing(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	invoice := f.addInvoice("100.00", "40.00", time.Hour)

	_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), &ProcessPaymentInput{
		CounterpartyID: f.counterparty.ID,
		Direction:      enum.DirectionSale,
		Amount:         decimal.RequireFromString("60.01"),
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Contains(t, appErr.Message, "60.01")
	assert.Contains(t, appErr.Message, "60.00")

	assert.Empty(t, f.store.payments)
	assert.True(t, f.store.invoices[invoice.ID].PaidAmount.Equal(decimal.RequireFromString("40.00")))
}

func TestProcessPayment_NothingToPay(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	f.addInvoice("100.00", "100.00", time.Hour)

	_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), &ProcessPaymentInput{
		CounterpartyID: f.counterparty.ID,
		Direction:      enum.DirectionSale,
		Amount:         decimal.RequireFromString("10.00"),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Empty(t, f.store.payments)
}

func TestProcessPayment_NonPositiveAmount(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	f.addInvoice("100.00", "0", time.Hour)

	for _, amount := range []string{"0", "-5.00"} {
		_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), &ProcessPaymentInput{
			CounterpartyID: f.counterparty.ID,
			Direction:      enum.DirectionSale,
			Amount:         decimal.RequireFromString(amount),
		})
		require.Error(t, err, "amount %s", amount)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 422, appErr.Code)
		require.Len(t, appErr.Errors, 1)
		assert.Equal(t, "amount", appErr.Errors[0].Field)
	}
	assert.Empty(t, f.store.payments)
}

func TestProcessPayment_UnknownCounterparty(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)

	_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), &ProcessPaymentInput{
		CounterpartyID: uuid.New(),
		Direction:      enum.DirectionSale,
		Amount:         decimal.RequireFromString("10.00"),
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestProcessPayment_MidSequenceFailureRollsBackAndReportsProgress(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	first := f.addInvoice("100.00", "0", 72*time.Hour)
	second := f.addInvoice("50.00", "0", 48*time.Hour)
	third := f.addInvoice("30.00", "0", 24*time.Hour)

	f.invoiceRepo.failUpdateFor = third.ID

	_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), &ProcessPaymentInput{
		CounterpartyID: f.counterparty.ID,
		Direction:      enum.DirectionSale,
		Amount:         decimal.RequireFromString("180.00"),
	})
	require.Error(t, err)

	var partial *apperror.PartialWriteError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, partial.AppliedInvoiceIDs)
	assert.Equal(t, third.ID, partial.FailedInvoiceID)

	// The transaction rolled back: no invoice kept a partial update and
	// no payment row survived.
	assert.True(t, f.store.invoices[first.ID].PaidAmount.IsZero())
	assert.True(t, f.store.invoices[second.ID].PaidAmount.IsZero())
	assert.True(t, f.store.invoices[third.ID].PaidAmount.IsZero())
	assert.Empty(t, f.store.payments)
	assert.Empty(t, f.notifier.changed, "no change notification on failure")
}

func TestProcessPayment_CustomNoteUsedOnEveryRow(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	f.addInvoice("60.00", "0", 2*time.Hour)
	f.addInvoice("40.00", "0", time.Hour)

	_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), &ProcessPaymentInput{
		CounterpartyID: f.counterparty.ID,
		Direction:      enum.DirectionSale,
		Amount:         decimal.RequireFromString("100.00"),
		Note:           "Mpesa ref QX12",
	})
	require.NoError(t, err)

	require.Len(t, f.store.payments, 2)
	for _, p := range f.store.payments {
		require.NotNil(t, p.Notes)
		assert.Equal(t, "Mpesa ref QX12", *p.Notes)
	}
}

func TestPreviewAllocation_DoesNotWrite(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	invoice := f.addInvoice("100.00", "0", time.Hour)

	result, err := f.payments.PreviewAllocation(context.Background(), f.actor(enum.RoleSalesman),
		f.counterparty.ID, enum.DirectionSale, decimal.RequireFromString("70.00"))
	require.NoError(t, err)

	require.Len(t, result.Allocations, 1)
	assert.True(t, result.Allocations[0].AmountApplied.Equal(decimal.RequireFromString("70.00")))
	assert.True(t, result.Allocations[0].RemainingBalance.Equal(decimal.RequireFromString("30.00")))

	assert.True(t, f.store.invoices[invoice.ID].PaidAmount.IsZero(), "preview must not touch the store")
	assert.Empty(t, f.store.payments)

	// Same state, same answer.
	again, err := f.payments.PreviewAllocation(context.Background(), f.actor(enum.RoleSalesman),
		f.counterparty.ID, enum.DirectionSale, decimal.RequireFromString("70.00"))
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestListUnpaidInvoices_SkipsSettled(t *testing.T) {
	f := newFixture(enum.CounterpartyTypeCustomer)
	open := f.addInvoice("100.00", "25.00", 48*time.Hour)
	f.addInvoice("80.00", "80.00", 24*time.Hour)

	unpaid, err := f.payments.ListUnpaidInvoices(context.Background(), f.actor(enum.RoleSalesman),
		f.counterparty.ID, enum.DirectionSale)
	require.NoError(t, err)

	require.Len(t, unpaid, 1)
	assert.Equal(t, open.ID, unpaid[0].ID)
	assert.True(t, unpaid[0].Balance().Equal(decimal.RequireFromString("75.00")))
}

func TestProcessPayment_AuthorizationCheckedBeforeExistence(t *testing.T) {
	// A salesman probing purchase-side data gets 403 even for an unknown
	// counterparty, so the error does not leak whether the id exists.
	f := newFixture(enum.CounterpartyTypeSupplier)

	_, err := f.payments.ProcessPayment(context.Background(), f.actor(enum.RoleSalesman), &ProcessPaymentInput{
		CounterpartyID: uuid.New(),
		Direction:      enum.DirectionPurchase,
		Amount:         decimal.RequireFromString("10.00"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}
