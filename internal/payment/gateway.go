package payment

import "context"

// LineItem is a priced, quantified product entry sent to the gateway.
// UnitAmount is in minor currency units.
type LineItem struct {
	Name       string `json:"name"`
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

// SessionParams describes a checkout session to be created.
type SessionParams struct {
	LineItems  []LineItem        `json:"line_items"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Session is the gateway's created checkout session. URL is where the
// customer is redirected to pay.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Gateway creates hosted checkout sessions with the external payment
// provider. This abstraction allows swapping the mock with the real client
// without touching the checkout flow.
type Gateway interface {
	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
}
