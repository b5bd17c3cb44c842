package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storewise/storefront-api/internal/models"
)

// PostgresProductRepository implements ProductRepository on pgx. The catalog
// is written by the admin dashboard; this service only reads it.
type PostgresProductRepository struct {
	db *pgxpool.Pool
}

func NewPostgresProductRepository(db *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) GetAll(ctx context.Context, storeID string) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, name, price, created_at, updated_at
		FROM products
		WHERE store_id = $1
		ORDER BY name`,
		storeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, storeID, id string) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRow(ctx, `
		SELECT id, store_id, name, price, created_at, updated_at
		FROM products
		WHERE store_id = $1 AND id = $2`,
		storeID, id,
	).Scan(&p.ID, &p.StoreID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresProductRepository) GetByIDs(ctx context.Context, storeID string, ids []string) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, name, price, created_at, updated_at
		FROM products
		WHERE store_id = $1 AND id = ANY($2)`,
		storeID, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *PostgresProductRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
