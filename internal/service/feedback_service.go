package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/storewise/storefront-api/internal/catalog"
	"github.com/storewise/storefront-api/internal/models"
	"github.com/storewise/storefront-api/internal/repository"
)

var (
	ErrMissingProductID     = errors.New("product id is required")
	ErrMissingRatingComment = errors.New("rating and comment are required")
	ErrInvalidRating        = errors.New("rating must be at least 1")
	ErrCommentTooShort      = errors.New("comment must be at least 10 characters")
	ErrUnknownProduct       = errors.New("unknown product")
)

const minCommentLength = 10

// FeedbackService handles the feedback record lifecycle: create, list by
// product, delete. Records are never updated.
type FeedbackService struct {
	repo     repository.FeedbackRepository
	products repository.ProductRepository
	filter   *catalog.Filter
}

// NewFeedbackService creates a feedback service. filter may be nil to
// disable the catalog guard; products resolves filter misses and is only
// consulted when a filter is set.
func NewFeedbackService(repo repository.FeedbackRepository, products repository.ProductRepository, filter *catalog.Filter) *FeedbackService {
	return &FeedbackService{repo: repo, products: products, filter: filter}
}

// CreateFeedbackInput carries the client-submitted fields. OrderID is
// optional and stored as an explicit nullable reference.
type CreateFeedbackInput struct {
	StoreID   string
	ProductID string
	OrderID   string
	Rating    int
	Comment   string
}

// Create validates input and persists a new feedback record.
// Missing productId is checked independently of missing rating/comment so
// each failure keeps its own message.
func (s *FeedbackService) Create(ctx context.Context, in CreateFeedbackInput) (*models.Feedback, error) {
	if in.ProductID == "" {
		return nil, ErrMissingProductID
	}
	if in.Rating == 0 || in.Comment == "" {
		return nil, ErrMissingRatingComment
	}
	if in.Rating < 1 {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(in.Comment) < minCommentLength {
		return nil, ErrCommentTooShort
	}
	if !s.filter.MightContain(in.ProductID) {
		if err := s.confirmProduct(ctx, in.StoreID, in.ProductID); err != nil {
			return nil, err
		}
	}

	fb := &models.Feedback{
		StoreID:   in.StoreID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if in.OrderID != "" {
		orderID := in.OrderID
		fb.OrderID = &orderID
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// confirmProduct resolves a filter miss against the catalog. The filter only
// knows ids present when it was loaded, so a miss may be a product created
// since; the database stays authoritative and a confirmed id is added to the
// filter so the next check hits.
func (s *FeedbackService) confirmProduct(ctx context.Context, storeID, productID string) error {
	if s.products == nil {
		return ErrUnknownProduct
	}
	if _, err := s.products.GetByID(ctx, storeID, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrUnknownProduct
		}
		return err
	}
	s.filter.Add(productID)
	return nil
}

// ListByProduct returns every feedback record for the product, in insertion
// order. No pagination.
func (s *FeedbackService) ListByProduct(ctx context.Context, storeID, productID string) ([]models.Feedback, error) {
	if productID == "" {
		return nil, ErrMissingProductID
	}
	return s.repo.ListByProduct(ctx, storeID, productID)
}

// Delete removes one feedback record. The repository reports
// repository.ErrFeedbackNotFound when the id does not exist, leaving the
// store unchanged.
func (s *FeedbackService) Delete(ctx context.Context, storeID, id string) error {
	return s.repo.Delete(ctx, storeID, id)
}
