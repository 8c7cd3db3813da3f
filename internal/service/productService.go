package service

import (
	"context"
	"fmt"

	repository "github.com/Kgadrw/profit-backend/internal/database/postgres"
	"github.com/Kgadrw/profit-backend/internal/entity"

	"github.com/google/uuid"
)

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(ctx context.Context, tenantID string, req *CreateProductRequest) (*entity.Product, error) {
	if req.Price < 0 {
		return nil, entity.ErrInvalidPrice
	}
	if req.Stock < 0 {
		return nil, entity.ErrInvalidStockAmount
	}

	product := &entity.Product{
		ID:                uuid.New().String(),
		TenantID:          tenantID,
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id, tenantID)
}

func (s *productService) GetProducts(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	return s.productRepo.GetByTenant(ctx, tenantID)
}

func (s *productService) UpdateProduct(ctx context.Context, tenantID, id string, req *UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, entity.ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, entity.ErrInvalidStockAmount
		}
		product.Stock = *req.Stock
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, tenantID, id string) error {
	return s.productRepo.Delete(ctx, id, tenantID)
}

func (s *productService) GetLowStockProducts(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, tenantID)
}
