package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storewise/storefront-api/internal/models"
)

// PostgresOrderRepository implements OrderRepository on pgx.
type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// CreateWithItems writes the order row and all item rows in one transaction.
func (r *PostgresOrderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
		order.UpdatedAt = now
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, store_id, is_paid, phone, address, email, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.StoreID, order.IsPaid, order.Phone, order.Address, order.Email, order.City,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].OrderID = order.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_amount)
			VALUES ($1, $2, $3, $4, $5)`,
			items[i].ID, order.ID, items[i].ProductID, items[i].Quantity, items[i].UnitAmount,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresOrderRepository) GetWithItems(ctx context.Context, storeID, id string) (*models.Order, []models.OrderItem, error) {
	var o models.Order
	err := r.db.QueryRow(ctx, `
		SELECT id, store_id, is_paid, phone, address, email, city, created_at, updated_at
		FROM orders
		WHERE store_id = $1 AND id = $2`,
		storeID, id,
	).Scan(&o.ID, &o.StoreID, &o.IsPaid, &o.Phone, &o.Address, &o.Email, &o.City, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_amount
		FROM order_items
		WHERE order_id = $1`,
		o.ID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitAmount); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	return &o, items, rows.Err()
}
