package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/storewise/storefront-api/internal/config"
	"github.com/storewise/storefront-api/internal/models"
	"github.com/storewise/storefront-api/internal/payment"
	"github.com/storewise/storefront-api/internal/repository"
	"github.com/storewise/storefront-api/internal/service"
	"github.com/storewise/storefront-api/pkg/logger"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	router       *chi.Mux
	feedbackRepo *repository.InMemoryFeedbackRepository
	productRepo  *repository.InMemoryProductRepository
	orderRepo    *repository.InMemoryOrderRepository
	gateway      *stubGateway
}

type stubGateway struct {
	lastParams payment.SessionParams
	err        error
}

func (g *stubGateway) CreateSession(ctx context.Context, params payment.SessionParams) (*payment.Session, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastParams = params
	return &payment.Session{ID: "cs_test", URL: "https://pay.example.test/cs_test"}, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.New("error")

	feedbackRepo := repository.NewInMemoryFeedbackRepository()
	productRepo := repository.NewInMemoryProductRepository()
	productRepo.Seed(models.Product{ID: "p1", StoreID: "store-1", Name: "Leather Bag", Price: 129.99})
	productRepo.Seed(models.Product{ID: "p2", StoreID: "store-1", Name: "Ceramic Mug", Price: 24.50})
	orderRepo := repository.NewInMemoryOrderRepository()
	gateway := &stubGateway{}

	feedbackService := service.NewFeedbackService(feedbackRepo, productRepo, nil)
	checkoutService := service.NewCheckoutService(productRepo, orderRepo, gateway, nil, nil,
		"MAD", "https://store.example.com", "storefront-api-test", log)
	productService := service.NewProductService(productRepo)

	authCfg := config.AuthConfig{JWTSecret: testJWTSecret}
	router := NewRouter(log, authCfg,
		NewFeedbackHandler(feedbackService, log),
		NewCheckoutHandler(checkoutService, log),
		NewProductHandler(productService, log),
		NewHealthHandler(log),
	)

	return &testEnv{
		router:       router,
		feedbackRepo: feedbackRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		gateway:      gateway,
	}
}

func testToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"email":   "user@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func authorize(r *http.Request, token string) {
	r.Header.Set("Authorization", "Bearer "+token)
}
