package service

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// LedgerNotifier is told when a counterparty's ledger changed so that
// downstream read models (counterparty ledger views, dashboard
// aggregates) can drop their caches. Implementations must be safe for
// concurrent use.
type LedgerNotifier interface {
	LedgerChanged(ctx context.Context, counterpartyID uuid.UUID)
}

type logNotifier struct{}

// NewLogNotifier returns a LedgerNotifier that just logs the changed
// paths. It stands in until a real cache layer exists.
func NewLogNotifier() LedgerNotifier {
	return logNotifier{}
}

func (logNotifier) LedgerChanged(ctx context.Context, counterpartyID uuid.UUID) {
	log.Printf("ledger changed: counterparty=%s paths=[/counterparties/%s/ledger /dashboard]",
		counterpartyID, counterpartyID)
}
