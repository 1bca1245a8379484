package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	domainRepo "github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/pagination"
	"gorm.io/gorm"
)

type counterpartyRepository struct {
	db *gorm.DB
}

// NewCounterpartyRepository creates a new counterparty repository
func NewCounterpartyRepository(db *gorm.DB) domainRepo.CounterpartyRepository {
	return &counterpartyRepository{db: db}
}

func (r *counterpartyRepository) Create(ctx context.Context, counterparty *entity.Counterparty) error {
	return dbFrom(ctx, r.db).Create(counterparty).Error
}

func (r *counterpartyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Counterparty, error) {
	var counterparty entity.Counterparty
	err := dbFrom(ctx, r.db).First(&counterparty, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &counterparty, err
}

func (r *counterpartyRepository) Update(ctx context.Context, counterparty *entity.Counterparty) error {
	return dbFrom(ctx, r.db).Save(counterparty).Error
}

func (r *counterpartyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Counterparty{}, "id = ?", id).Error
}

func (r *counterpartyRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, cpType *enum.CounterpartyType) ([]entity.Counterparty, int64, error) {
	var counterparties []entity.Counterparty
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Counterparty{})
	if cpType != nil {
		query = query.Where("type = ?", *cpType)
	}
	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR location ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&counterparties).Error

	return counterparties, total, err
}

func (r *counterpartyRepository) CountByType(ctx context.Context, cpType enum.CounterpartyType) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).
		Model(&entity.Counterparty{}).
		Where("type = ?", cpType).
		Count(&count).Error
	return count, err
}
