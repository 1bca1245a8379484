package allocation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveAmount rejects zero and negative payment amounts before
// any invoice is inspected.
var ErrNonPositiveAmount = errors.New("payment amount must be greater than zero")

// NothingToPayError means the counterparty has no invoice with a
// positive balance in the requested direction.
type NothingToPayError struct{}

func (e *NothingToPayError) Error() string {
	return "no outstanding balance found"
}

// OverpaymentError means the payment exceeds everything the
// counterparty owes. Both figures are kept so callers can show them.
type OverpaymentError struct {
	Requested   decimal.Decimal
	Outstanding decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment amount (%s) exceeds total outstanding balance (%s)",
		e.Requested.StringFixed(2), e.Outstanding.StringFixed(2))
}
