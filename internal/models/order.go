package models

import "time"

// Order is a checkout order. IsPaid stays false until the payment gateway
// confirms the session out of band.
type Order struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	IsPaid    bool      `json:"isPaid"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem links an order to one product. UnitAmount is in minor currency
// units (price x 100).
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	UnitAmount int64  `json:"unitAmount"`
}
