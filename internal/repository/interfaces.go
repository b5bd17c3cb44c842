package repository

import (
	"context"

	"github.com/storewise/storefront-api/internal/models"
)

// FeedbackRepository defines data access for feedback records.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	ListByProduct(ctx context.Context, storeID, productID string) ([]models.Feedback, error)
	GetByID(ctx context.Context, storeID, id string) (*models.Feedback, error)
	Delete(ctx context.Context, storeID, id string) error
}

// ProductRepository defines read-only data access for the catalog.
type ProductRepository interface {
	GetAll(ctx context.Context, storeID string) ([]models.Product, error)
	GetByID(ctx context.Context, storeID, id string) (*models.Product, error)
	GetByIDs(ctx context.Context, storeID string, ids []string) ([]models.Product, error)
	ListIDs(ctx context.Context) ([]string, error)
}

// OrderRepository defines data access for checkout orders.
type OrderRepository interface {
	// CreateWithItems persists an order and its items atomically: either the
	// order and every item are written, or nothing is.
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	GetWithItems(ctx context.Context, storeID, id string) (*models.Order, []models.OrderItem, error)
}
