package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	domainRepo "github.com/kogello/mazao-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFrom(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) ListByCounterparty(ctx context.Context, counterpartyID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFrom(ctx, r.db).
		Where("counterparty_id = ?", counterpartyID).
		Order("created_at ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ExistsForCounterparty(ctx context.Context, counterpartyID uuid.UUID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).
		Model(&entity.Payment{}).
		Where("counterparty_id = ?", counterpartyID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
