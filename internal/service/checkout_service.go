package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/storewise/storefront-api/internal/catalog"
	"github.com/storewise/storefront-api/internal/events"
	"github.com/storewise/storefront-api/internal/models"
	"github.com/storewise/storefront-api/internal/payment"
	"github.com/storewise/storefront-api/internal/repository"
)

var (
	ErrEmptyProductIDs = errors.New("product ids are required")
	ErrInvalidUserInfo = errors.New("invalid user info")
)

// UserInfo is the customer contact block captured at checkout.
type UserInfo struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	City    string `json:"city"`
}

// CheckoutInput is a checkout request: the cart's product ids plus customer
// info. Quantity is fixed at 1 per product.
type CheckoutInput struct {
	StoreID    string
	ProductIDs []string
	UserInfo   UserInfo
	TraceID    string
}

// CheckoutResult carries the gateway redirect URL for the created session.
type CheckoutResult struct {
	OrderID     string `json:"orderId"`
	URL         string `json:"url"`
	TotalAmount int64  `json:"totalAmount"`
}

// CheckoutService creates orders and payment sessions. The order and its
// items are written in one transaction; the payment session is created
// afterwards, so a gateway failure leaves an unpaid order behind.
type CheckoutService struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	gateway   payment.Gateway
	publisher events.Publisher
	filter    *catalog.Filter
	validate  *validator.Validate

	currency    string
	storeURL    string
	serviceName string
	log         *slog.Logger
}

func NewCheckoutService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	gateway payment.Gateway,
	publisher events.Publisher,
	filter *catalog.Filter,
	currency, storeURL, serviceName string,
	log *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		products:    products,
		orders:      orders,
		gateway:     gateway,
		publisher:   publisher,
		filter:      filter,
		validate:    validator.New(),
		currency:    currency,
		storeURL:    storeURL,
		serviceName: serviceName,
		log:         log,
	}
}

// Checkout validates the cart, creates the order with its items atomically
// and opens a payment session carrying the order id as correlation metadata.
func (s *CheckoutService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if len(in.ProductIDs) == 0 {
		return nil, ErrEmptyProductIDs
	}
	if err := s.validate.Struct(in.UserInfo); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUserInfo, err)
	}
	for _, id := range in.ProductIDs {
		if s.filter.MightContain(id) {
			continue
		}
		// A miss is not authoritative: the filter only knows ids present
		// when it was loaded. Confirm against the catalog before rejecting.
		if _, err := s.products.GetByID(ctx, in.StoreID, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
			}
			return nil, err
		}
		s.filter.Add(id)
	}

	products, err := s.products.GetByIDs(ctx, in.StoreID, in.ProductIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var (
		items     []models.OrderItem
		lineItems []payment.LineItem
		evItems   []events.ItemAmount
		total     int64
	)
	for _, id := range in.ProductIDs {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
		}
		unitAmount := int64(math.Round(p.Price * 100))
		items = append(items, models.OrderItem{
			ProductID:  p.ID,
			Quantity:   1,
			UnitAmount: unitAmount,
		})
		lineItems = append(lineItems, payment.LineItem{
			Name:       p.Name,
			Currency:   s.currency,
			UnitAmount: unitAmount,
			Quantity:   1,
		})
		evItems = append(evItems, events.ItemAmount{
			ProductID:  p.ID,
			Quantity:   1,
			UnitAmount: unitAmount,
		})
		total += unitAmount
	}

	order := &models.Order{
		StoreID: in.StoreID,
		IsPaid:  false,
		Phone:   in.UserInfo.Phone,
		Address: in.UserInfo.Address,
		Email:   in.UserInfo.Email,
		City:    in.UserInfo.City,
	}
	if err := s.orders.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateSession(ctx, payment.SessionParams{
		LineItems:  lineItems,
		SuccessURL: s.storeURL + "/cart?success=1",
		CancelURL:  s.storeURL + "/cart?canceled=1",
		Metadata:   map[string]string{"orderId": order.ID},
	})
	if err != nil {
		// The order row stays; payment can be retried out of band.
		s.log.Error("payment session creation failed", "order_id", order.ID, "error", err)
		return nil, err
	}

	events.PublishOrderCreated(s.publisher, s.serviceName, in.TraceID, events.OrderCreatedPayload{
		OrderID:     order.ID,
		StoreID:     order.StoreID,
		Items:       evItems,
		TotalAmount: total,
	})

	s.log.Info("checkout order created",
		"order_id", order.ID,
		"store_id", order.StoreID,
		"items", len(items),
		"total_amount", total,
	)
	return &CheckoutResult{OrderID: order.ID, URL: session.URL, TotalAmount: total}, nil
}
