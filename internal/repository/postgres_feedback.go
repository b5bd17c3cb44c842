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

// PostgresFeedbackRepository implements FeedbackRepository on pgx.
type PostgresFeedbackRepository struct {
	db *pgxpool.Pool
}

func NewPostgresFeedbackRepository(db *pgxpool.Pool) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

func (r *PostgresFeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO feedback (id, store_id, product_id, order_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		fb.ID, fb.StoreID, fb.ProductID, fb.OrderID, fb.Rating, fb.Comment, fb.CreatedAt,
	)
	return err
}

func (r *PostgresFeedbackRepository) ListByProduct(ctx context.Context, storeID, productID string) ([]models.Feedback, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, product_id, order_id, rating, comment, created_at
		FROM feedback
		WHERE store_id = $1 AND product_id = $2
		ORDER BY created_at, id`,
		storeID, productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Feedback, 0)
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.StoreID, &fb.ProductID, &fb.OrderID, &fb.Rating, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

func (r *PostgresFeedbackRepository) GetByID(ctx context.Context, storeID, id string) (*models.Feedback, error) {
	var fb models.Feedback
	err := r.db.QueryRow(ctx, `
		SELECT id, store_id, product_id, order_id, rating, comment, created_at
		FROM feedback
		WHERE store_id = $1 AND id = $2`,
		storeID, id,
	).Scan(&fb.ID, &fb.StoreID, &fb.ProductID, &fb.OrderID, &fb.Rating, &fb.Comment, &fb.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *PostgresFeedbackRepository) Delete(ctx context.Context, storeID, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM feedback WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}
