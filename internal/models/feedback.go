package models

import "time"

// Feedback is a rating+comment record attached to a product, optionally to
// the order it originated from. Records are never updated in place.
type Feedback struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	ProductID string    `json:"productId"`
	OrderID   *string   `json:"orderId,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
