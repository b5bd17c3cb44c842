package handlers

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/storewise/storefront-api/internal/config"
	"github.com/storewise/storefront-api/internal/middleware"
)

// NewRouter assembles the full route tree with shared middleware. Feedback
// create and delete sit behind authentication; list, catalog reads and
// checkout are public storefront surface.
func NewRouter(
	log *slog.Logger,
	authCfg config.AuthConfig,
	feedbackHandler *FeedbackHandler,
	checkoutHandler *CheckoutHandler,
	productHandler *ProductHandler,
	healthHandler *HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Permissive CORS for the storefront, including the OPTIONS preflight.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/{storeId}", func(r chi.Router) {
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{productId}", productHandler.GetProduct)
		r.Get("/feedback", feedbackHandler.ListFeedback)
		r.Post("/checkout", checkoutHandler.CreateCheckout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(authCfg))
			r.Post("/feedback", feedbackHandler.CreateFeedback)
			r.Delete("/feedback/{feedbackId}", feedbackHandler.DeleteFeedback)
		})
	})

	return r
}
