package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storewise/storefront-api/internal/repository"
	"github.com/storewise/storefront-api/internal/service"
)

// ProductHandler handles catalog read requests
type ProductHandler struct {
	service *service.ProductService
	log     *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: log}
}

// ListProducts handles GET /{storeId}/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		h.log.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.log)
}

// GetProduct handles GET /{storeId}/products/{productId}
// - 200: successful operation
// - 404: product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		WriteError(w, http.StatusBadRequest, "Product id is required", h.log)
		return
	}

	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "storeId"), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			WriteError(w, http.StatusNotFound, "Product not found", h.log)
			return
		}
		h.log.Error("failed to get product", "product_id", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.log)
}
