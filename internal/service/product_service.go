package service

import (
	"context"

	"github.com/storewise/storefront-api/internal/models"
	"github.com/storewise/storefront-api/internal/repository"
)

// ProductService exposes catalog reads for the storefront.
type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListProducts returns the store's catalog.
func (s *ProductService) ListProducts(ctx context.Context, storeID string) ([]models.Product, error) {
	return s.repo.GetAll(ctx, storeID)
}

// GetProduct returns a product by id.
func (s *ProductService) GetProduct(ctx context.Context, storeID, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, storeID, id)
}
