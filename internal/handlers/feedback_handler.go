package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storewise/storefront-api/internal/middleware"
	"github.com/storewise/storefront-api/internal/repository"
	"github.com/storewise/storefront-api/internal/service"
)

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	log             *slog.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService *service.FeedbackService, log *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		log:             log,
	}
}

// CreateFeedbackRequest is the POST body. orderId is optional.
type CreateFeedbackRequest struct {
	ProductID string `json:"productId"`
	OrderID   string `json:"orderId,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// CreateFeedback handles POST /{storeId}/feedback
// - 201: created record
// - 400: missing/invalid field, each with its own message
// - 403: unauthenticated
// - 500: internal error, detail logged only
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	if middleware.PrincipalFromContext(r.Context()) == nil {
		WriteError(w, http.StatusForbidden, "Unauthenticated", h.log)
		return
	}

	var req CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	fb, err := h.feedbackService.Create(r.Context(), service.CreateFeedbackInput{
		StoreID:   chi.URLParam(r, "storeId"),
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingProductID):
			WriteError(w, http.StatusBadRequest, "Product id is required", h.log)
		case errors.Is(err, service.ErrMissingRatingComment):
			WriteError(w, http.StatusBadRequest, "Rating and comment are required", h.log)
		case errors.Is(err, service.ErrInvalidRating):
			WriteError(w, http.StatusBadRequest, "Rating must be at least 1", h.log)
		case errors.Is(err, service.ErrCommentTooShort):
			WriteError(w, http.StatusBadRequest, "Comment must be at least 10 characters", h.log)
		case errors.Is(err, service.ErrUnknownProduct):
			WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
		default:
			h.log.Error("failed to create feedback", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("feedback created", "feedback_id", fb.ID, "product_id", fb.ProductID)
	WriteJSON(w, http.StatusCreated, fb, h.log)
}

// ListFeedback handles GET /{storeId}/feedback?productId=
// Returns the full result set in insertion order; no pagination.
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")

	feedbacks, err := h.feedbackService.ListByProduct(r.Context(), chi.URLParam(r, "storeId"), productID)
	if err != nil {
		if errors.Is(err, service.ErrMissingProductID) {
			WriteError(w, http.StatusBadRequest, "Product id is required", h.log)
			return
		}
		h.log.Error("failed to list feedback", "product_id", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, feedbacks, h.log)
}

// DeleteFeedback handles DELETE /{storeId}/feedback/{feedbackId}
// Looks the record up first: 404 when absent, 204 with empty body on success.
func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	if middleware.PrincipalFromContext(r.Context()) == nil {
		WriteError(w, http.StatusForbidden, "Unauthenticated", h.log)
		return
	}

	feedbackID := chi.URLParam(r, "feedbackId")
	if feedbackID == "" {
		WriteError(w, http.StatusBadRequest, "Feedback id is required", h.log)
		return
	}

	err := h.feedbackService.Delete(r.Context(), chi.URLParam(r, "storeId"), feedbackID)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			WriteError(w, http.StatusNotFound, "Feedback not found", h.log)
			return
		}
		h.log.Error("failed to delete feedback", "feedback_id", feedbackID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	h.log.Info("feedback deleted", "feedback_id", feedbackID)
	WriteNoContent(w)
}
