package payment

import (
	"context"
	"fmt"
	"log/slog"
)

// MockGateway implements Gateway without calling any provider. It logs the
// session and returns a deterministic redirect URL derived from the order
// metadata. Used in tests and local runs without gateway credentials.
type MockGateway struct {
	log *slog.Logger
}

func NewMockGateway(log *slog.Logger) *MockGateway {
	return &MockGateway{log: log}
}

func (m *MockGateway) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	orderID := params.Metadata["orderId"]
	m.log.Info("mock payment session created",
		"order_id", orderID,
		"line_items", len(params.LineItems),
	)
	return &Session{
		ID:  "mock_" + orderID,
		URL: fmt.Sprintf("https://pay.example.test/session/%s", orderID),
	}, nil
}
