package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storewise/storefront-api/internal/models"
)

// In-memory implementations backing the test suites and local runs without a
// database. The feedback store preserves insertion order, matching the
// ordering guarantee of the Postgres implementation.

type InMemoryFeedbackRepository struct {
	mu    sync.RWMutex
	items []models.Feedback
}

func NewInMemoryFeedbackRepository() *InMemoryFeedbackRepository {
	return &InMemoryFeedbackRepository{}
}

func (r *InMemoryFeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	r.items = append(r.items, *fb)
	return nil
}

func (r *InMemoryFeedbackRepository) ListByProduct(ctx context.Context, storeID, productID string) ([]models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Feedback, 0)
	for _, fb := range r.items {
		if fb.StoreID == storeID && fb.ProductID == productID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (r *InMemoryFeedbackRepository) GetByID(ctx context.Context, storeID, id string) (*models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, fb := range r.items {
		if fb.StoreID == storeID && fb.ID == id {
			found := fb
			return &found, nil
		}
	}
	return nil, ErrFeedbackNotFound
}

func (r *InMemoryFeedbackRepository) Delete(ctx context.Context, storeID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, fb := range r.items {
		if fb.StoreID == storeID && fb.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrFeedbackNotFound
}

// Count reports the total number of stored records across all products.
func (r *InMemoryFeedbackRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{products: make(map[string]models.Product)}
}

// Seed inserts or replaces a product.
func (r *InMemoryProductRepository) Seed(p models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

func (r *InMemoryProductRepository) GetAll(ctx context.Context, storeID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryProductRepository) GetByID(ctx context.Context, storeID, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || p.StoreID != storeID {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *InMemoryProductRepository) GetByIDs(ctx context.Context, storeID string, ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryProductRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	return ids, nil
}

type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
	items  map[string][]models.OrderItem
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.Order),
		items:  make(map[string][]models.OrderItem),
	}
}

func (r *InMemoryOrderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
		order.UpdatedAt = now
	}

	stored := make([]models.OrderItem, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.OrderID = order.ID
		stored[i] = it
	}
	r.orders[order.ID] = *order
	r.items[order.ID] = stored
	return nil
}

func (r *InMemoryOrderRepository) GetWithItems(ctx context.Context, storeID, id string) (*models.Order, []models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok || o.StoreID != storeID {
		return nil, nil, ErrOrderNotFound
	}
	items := append([]models.OrderItem(nil), r.items[id]...)
	return &o, items, nil
}

// OrderCount reports how many orders were created.
func (r *InMemoryOrderRepository) OrderCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
