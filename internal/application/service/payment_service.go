package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/application/allocation"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// PaymentService is the only writer of invoice paid amounts. It turns
// an allocation plan into durable payment rows and invoice updates,
// applied oldest-first inside one storage transaction.
type PaymentService struct {
	invoiceRepo      repository.InvoiceRepository
	paymentRepo      repository.PaymentRepository
	counterpartyRepo repository.CounterpartyRepository
	tx               repository.TxManager
	notifier         LedgerNotifier
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	counterpartyRepo repository.CounterpartyRepository,
	tx repository.TxManager,
	notifier LedgerNotifier,
) *PaymentService {
	return &PaymentService{
		invoiceRepo:      invoiceRepo,
		paymentRepo:      paymentRepo,
		counterpartyRepo: counterpartyRepo,
		tx:               tx,
		notifier:         notifier,
	}
}

// ProcessPaymentInput represents the process payment input
type ProcessPaymentInput struct {
	CounterpartyID uuid.UUID
	Direction      enum.Direction
	Amount         decimal.Decimal
	Note           string
}

// checkPaymentAccess rejects the request before any financial data is
// read: non-positive amounts, then the role gate (the purchase side, i.e.
// supplier money, is admin-only), then the counterparty itself.
func (s *PaymentService) checkPaymentAccess(ctx context.Context, actor entity.ActingUser, counterpartyID uuid.UUID, direction enum.Direction) error {
	if direction == enum.DirectionPurchase && !actor.IsAdmin() {
		return apperror.ErrForbidden
	}

	counterparty, err := s.counterpartyRepo.GetByID(ctx, counterpartyID)
	if err != nil {
		return err
	}
	if counterparty == nil {
		return apperror.NewNotFoundError("Counterparty")
	}
	if counterparty.Type.Direction() != direction {
		return apperror.NewBadRequestError(
			fmt.Sprintf("A %s cannot settle %s invoices", counterparty.Type, direction))
	}
	return nil
}

// ListUnpaidInvoices returns the invoices a payment would be allocated
// against: positive balance only, oldest first.
func (s *PaymentService) ListUnpaidInvoices(ctx context.Context, actor entity.ActingUser, counterpartyID uuid.UUID, direction enum.Direction) ([]entity.Invoice, error) {
	if err := s.checkPaymentAccess(ctx, actor, counterpartyID, direction); err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListUnpaid(ctx, counterpartyID, direction)
}

// PreviewAllocation computes the FIFO breakdown of a payment without
// writing anything. Two calls over the same state give the same answer.
func (s *PaymentService) PreviewAllocation(ctx context.Context, actor entity.ActingUser, counterpartyID uuid.UUID, direction enum.Direction, amount decimal.Decimal) (*allocation.Result, error) {
	if !amount.IsPositive() {
		return nil, errNonPositiveAmount()
	}
	if err := s.checkPaymentAccess(ctx, actor, counterpartyID, direction); err != nil {
		return nil, err
	}

	unpaid, err := s.invoiceRepo.ListUnpaid(ctx, counterpartyID, direction)
	if err != nil {
		return nil, err
	}

	result, err := allocation.Allocate(unpaid, amount)
	if err != nil {
		return nil, mapAllocationError(err)
	}
	return result, nil
}

// ProcessPayment distributes a payment across the counterparty's unpaid
// invoices, oldest first, and returns the ids of the invoices updated.
//
// The unpaid set is re-fetched here rather than taken from the caller: a
// preview shown to the user may be stale by the time they confirm. Each
// invoice is then re-read under a row lock immediately before its
// update, so the paid amount written is based on current state, not on
// the snapshot the allocation was planned from. All writes happen inside
// one transaction; on a mid-sequence failure everything is rolled back
// and the returned PartialWriteError records how far the run got.
func (s *PaymentService) ProcessPayment(ctx context.Context, actor entity.ActingUser, input *ProcessPaymentInput) ([]uuid.UUID, error) {
	if !input.Amount.IsPositive() {
		return nil, errNonPositiveAmount()
	}
	if err := s.checkPaymentAccess(ctx, actor, input.CounterpartyID, input.Direction); err != nil {
		return nil, err
	}

	unpaid, err := s.invoiceRepo.ListUnpaid(ctx, input.CounterpartyID, input.Direction)
	if err != nil {
		return nil, err
	}

	plan, err := allocation.Allocate(unpaid, input.Amount)
	if err != nil {
		return nil, mapAllocationError(err)
	}

	applied := make([]uuid.UUID, 0, len(plan.Allocations))
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		for _, alloc := range plan.Allocations {
			if err := s.applyAllocation(txCtx, actor, input, alloc); err != nil {
				return &apperror.PartialWriteError{
					AppliedInvoiceIDs: applied,
					FailedInvoiceID:   alloc.InvoiceID,
					Err:               err,
				}
			}
			applied = append(applied, alloc.InvoiceID)
		}
		return nil
	})
	if err != nil {
		var partial *apperror.PartialWriteError
		if errors.As(err, &partial) {
			log.Printf("payment reconciliation required: counterparty=%s applied=%v failed=%s: %v",
				input.CounterpartyID, partial.AppliedInvoiceIDs, partial.FailedInvoiceID, partial.Err)
		}
		return nil, err
	}

	s.notifier.LedgerChanged(ctx, input.CounterpartyID)
	return applied, nil
}

// applyAllocation writes one payment row and bumps the invoice's paid
// amount. It must run inside the processor's transaction.
func (s *PaymentService) applyAllocation(ctx context.Context, actor entity.ActingUser, input *ProcessPaymentInput, alloc allocation.Allocation) error {
	invoice, err := s.invoiceRepo.GetByIDForUpdate(ctx, alloc.InvoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return fmt.Errorf("invoice %s no longer exists", alloc.InvoiceID)
	}

	newPaid := invoice.PaidAmount.Add(alloc.AmountApplied)
	if newPaid.GreaterThan(invoice.TotalAmount) {
		// A concurrent payment settled part of this invoice between the
		// unpaid fetch and the row lock.
		return fmt.Errorf("applying %s would push paid amount %s past invoice total %s",
			alloc.AmountApplied, invoice.PaidAmount, invoice.TotalAmount)
	}

	note := input.Note
	if note == "" {
		note = fmt.Sprintf("Payment for %s #%.8s", input.Direction, alloc.InvoiceID.String())
	}

	payment := &entity.Payment{
		CounterpartyID: input.CounterpartyID,
		InvoiceID:      invoice.ID,
		BranchID:       invoice.BranchID,
		Amount:         alloc.AmountApplied,
		PaymentType:    input.Direction.PaymentType(),
		Notes:          &note,
		CreatedByID:    &actor.ID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return err
	}

	return s.invoiceRepo.UpdatePaidAmount(ctx, invoice.ID, newPaid)
}

func errNonPositiveAmount() error {
	return apperror.NewValidationError([]apperror.FieldError{
		{Field: "amount", Message: "must be greater than zero"},
	})
}

// mapAllocationError translates engine errors into HTTP-facing ones,
// keeping the figures the engine computed in the message.
func mapAllocationError(err error) error {
	var overpayment *allocation.OverpaymentError
	var nothing *allocation.NothingToPayError
	switch {
	case errors.Is(err, allocation.ErrNonPositiveAmount):
		return errNonPositiveAmount()
	case errors.As(err, &overpayment):
		return apperror.NewUnprocessableError(overpayment.Error())
	case errors.As(err, &nothing):
		return apperror.NewBadRequestError(nothing.Error())
	}
	return err
}
