package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/pkg/pagination"
)

// CounterpartyRepository defines the interface for counterparty data operations
type CounterpartyRepository interface {
	Create(ctx context.Context, counterparty *entity.Counterparty) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Counterparty, error)
	Update(ctx context.Context, counterparty *entity.Counterparty) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, cpType *enum.CounterpartyType) ([]entity.Counterparty, int64, error)
	CountByType(ctx context.Context, cpType enum.CounterpartyType) (int64, error)
}
