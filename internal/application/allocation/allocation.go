// Package allocation distributes one payment across a counterparty's
// outstanding invoices, oldest first. It is pure: no I/O, no clock, no
// hidden state, which is what makes the preview endpoint idempotent and
// the engine trivially testable.
package allocation

import (
	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Allocation is the slice of a payment applied to one invoice. It is
// transient: the processor consumes it immediately and only the
// resulting payment rows are persisted.
type Allocation struct {
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	OriginalBalance  decimal.Decimal `json:"original_balance"`
	AmountApplied    decimal.Decimal `json:"amount_applied"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Settled          bool            `json:"settled"`
}

// Result is a full FIFO breakdown of one payment amount.
type Result struct {
	Allocations      []Allocation    `json:"allocations"`
	TotalAllocated   decimal.Decimal `json:"total_allocated"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

// Allocate walks unpaid invoices oldest-first and applies the payment
// amount until it is used up. Invoices must be pre-sorted ascending by
// creation time; the repository query guarantees that ordering. Rows
// without a positive balance are skipped.
//
// The whole amount is either allocatable or the call fails: a payment
// exceeding the total outstanding is rejected up front with
// ErrOverpayment rather than partially applied.
func Allocate(unpaid []entity.Invoice, amount decimal.Decimal) (*Result, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	totalOutstanding := decimal.Zero
	for i := range unpaid {
		if bal := unpaid[i].Balance(); bal.IsPositive() {
			totalOutstanding = totalOutstanding.Add(bal)
		}
	}
	if totalOutstanding.IsZero() {
		return nil, &NothingToPayError{}
	}
	if amount.GreaterThan(totalOutstanding) {
		return nil, &OverpaymentError{Requested: amount, Outstanding: totalOutstanding}
	}

	result := &Result{
		Allocations:      make([]Allocation, 0, len(unpaid)),
		TotalAllocated:   decimal.Zero,
		TotalOutstanding: totalOutstanding,
	}

	remaining := amount
	for i := range unpaid {
		if !remaining.IsPositive() {
			break
		}
		balance := unpaid[i].Balance()
		if !balance.IsPositive() {
			continue
		}

		applied := decimal.Min(balance, remaining)
		result.Allocations = append(result.Allocations, Allocation{
			InvoiceID:        unpaid[i].ID,
			OriginalBalance:  balance,
			AmountApplied:    applied,
			RemainingBalance: balance.Sub(applied),
			Settled:          applied.Equal(balance),
		})
		result.TotalAllocated = result.TotalAllocated.Add(applied)
		remaining = remaining.Sub(applied)
	}

	return result, nil
}
