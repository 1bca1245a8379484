package repository

import "context"

// TxManager runs a function inside one storage transaction. The payment
// processor uses it so the payment rows and invoice updates of a single
// allocation either all land or none do.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
