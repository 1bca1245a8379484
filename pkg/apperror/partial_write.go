package apperror

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// PartialWriteError reports a payment run that failed partway through
// its invoice updates. AppliedInvoiceIDs lists the invoices whose writes
// had succeeded before the failure and FailedInvoiceID the one that
// broke, so operators can check the counterparty's ledger before
// retrying. When the store runs the sequence inside a transaction the
// applied writes are rolled back with it; the ids still tell the
// operator how far the run got.
type PartialWriteError struct {
	AppliedInvoiceIDs []uuid.UUID
	FailedInvoiceID   uuid.UUID
	Err               error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("payment failed at invoice %s after %d invoice(s) were updated: %v",
		e.FailedInvoiceID, len(e.AppliedInvoiceIDs), e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// AppError maps the partial write to an HTTP-facing error instructing
// the operator to verify the ledger before retrying.
func (e *PartialWriteError) AppError() *AppError {
	return &AppError{
		Code: http.StatusInternalServerError,
		Message: fmt.Sprintf(
			"Payment processing failed at invoice %s. Check the counterparty's ledger before retrying.",
			e.FailedInvoiceID),
	}
}
