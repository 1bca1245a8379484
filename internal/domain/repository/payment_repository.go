package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
)

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only: no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// ListByCounterparty returns every payment of a counterparty in
	// ledger order (created_at ASC, id ASC).
	ListByCounterparty(ctx context.Context, counterpartyID uuid.UUID) ([]entity.Payment, error)
	// ExistsForCounterparty reports whether any payment history exists,
	// which blocks counterparty deletion.
	ExistsForCounterparty(ctx context.Context, counterpartyID uuid.UUID) (bool, error)
}
