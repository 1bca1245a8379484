package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/apperror"
	"github.com/kogello/mazao-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductService handles produce catalog management
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput represents create/update input for a product
type ProductInput struct {
	Name               string
	Description        *string
	CostPriceCarton    *decimal.Decimal
	CostPriceTray      *decimal.Decimal
	CostPriceKg        *decimal.Decimal
	SellingPriceCarton *decimal.Decimal
	SellingPriceTray   *decimal.Decimal
	SellingPriceKg     *decimal.Decimal
	KgPerTray          *decimal.Decimal
	TrayPerCarton      *decimal.Decimal
}

func validateProductInput(input *ProductInput) error {
	var fieldErrors []apperror.FieldError

	prices := map[string]*decimal.Decimal{
		"cost_price_carton":    input.CostPriceCarton,
		"cost_price_tray":      input.CostPriceTray,
		"cost_price_kg":        input.CostPriceKg,
		"selling_price_carton": input.SellingPriceCarton,
		"selling_price_tray":   input.SellingPriceTray,
		"selling_price_kg":     input.SellingPriceKg,
	}
	for field, price := range prices {
		if price != nil && price.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: "must not be negative"})
		}
	}

	conversions := map[string]*decimal.Decimal{
		"kg_per_tray":     input.KgPerTray,
		"tray_per_carton": input.TrayPerCarton,
	}
	for field, factor := range conversions {
		if factor != nil && !factor.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: "must be greater than zero"})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateProduct adds a new product to the catalog (admin only)
func (s *ProductService) CreateProduct(ctx context.Context, actor entity.ActingUser, input *ProductInput) (*entity.Product, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:               input.Name,
		Description:        input.Description,
		CostPriceCarton:    input.CostPriceCarton,
		CostPriceTray:      input.CostPriceTray,
		CostPriceKg:        input.CostPriceKg,
		SellingPriceCarton: input.SellingPriceCarton,
		SellingPriceTray:   input.SellingPriceTray,
		SellingPriceKg:     input.SellingPriceKg,
		KgPerTray:          input.KgPerTray,
		TrayPerCarton:      input.TrayPerCarton,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates product prices and conversion factors (admin only)
func (s *ProductService) UpdateProduct(ctx context.Context, actor entity.ActingUser, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.CostPriceCarton != nil {
		product.CostPriceCarton = input.CostPriceCarton
	}
	if input.CostPriceTray != nil {
		product.CostPriceTray = input.CostPriceTray
	}
	if input.CostPriceKg != nil {
		product.CostPriceKg = input.CostPriceKg
	}
	if input.SellingPriceCarton != nil {
		product.SellingPriceCarton = input.SellingPriceCarton
	}
	if input.SellingPriceTray != nil {
		product.SellingPriceTray = input.SellingPriceTray
	}
	if input.SellingPriceKg != nil {
		product.SellingPriceKg = input.SellingPriceKg
	}
	if input.KgPerTray != nil {
		product.KgPerTray = input.KgPerTray
	}
	if input.TrayPerCarton != nil {
		product.TrayPerCarton = input.TrayPerCarton
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog (admin only)
func (s *ProductService) DeleteProduct(ctx context.Context, actor entity.ActingUser, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperror.ErrForbidden
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with optional name search
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	params.Validate()

	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}
