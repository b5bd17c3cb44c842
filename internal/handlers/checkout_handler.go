package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/storewise/storefront-api/internal/service"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	log             *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		log:             log,
	}
}

// CheckoutRequest is the POST body sent by the storefront cart.
type CheckoutRequest struct {
	ProductIDs []string         `json:"productIds"`
	UserInfo   service.UserInfo `json:"userInfo"`
}

// CreateCheckout handles POST /{storeId}/checkout
// - 200: {orderId, url, totalAmount} with the gateway redirect url
// - 400: empty productIds or invalid user info
// - 500: persistence or gateway failure
func (h *CheckoutHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	res, err := h.checkoutService.Checkout(r.Context(), service.CheckoutInput{
		StoreID:    chi.URLParam(r, "storeId"),
		ProductIDs: req.ProductIDs,
		UserInfo:   req.UserInfo,
		TraceID:    chimiddleware.GetReqID(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyProductIDs):
			WriteError(w, http.StatusBadRequest, "Product ids are required", h.log)
		case errors.Is(err, service.ErrInvalidUserInfo):
			WriteError(w, http.StatusBadRequest, "Invalid user info", h.log)
		case errors.Is(err, service.ErrUnknownProduct):
			WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
		default:
			h.log.Error("checkout failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, res, h.log)
}
