package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	domainRepo "github.com/kogello/mazao-api/internal/domain/repository"
	"gorm.io/gorm"
)

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return dbFrom(ctx, r.db).Create(branch).Error
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := dbFrom(ctx, r.db).First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) GetByName(ctx context.Context, name string) (*entity.Branch, error) {
	var branch entity.Branch
	err := dbFrom(ctx, r.db).First(&branch, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return dbFrom(ctx, r.db).Save(branch).Error
}

func (r *branchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Branch{}, "id = ?", id).Error
}

func (r *branchRepository) List(ctx context.Context) ([]entity.Branch, error) {
	var branches []entity.Branch
	err := dbFrom(ctx, r.db).Order("name ASC").Find(&branches).Error
	return branches, err
}

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) List(ctx context.Context, branchID *uuid.UUID) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	query := dbFrom(ctx, r.db).
		Preload("Product").
		Preload("Branch")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	err := query.Order("quantity_kg DESC").Find(&items).Error
	return items, err
}
