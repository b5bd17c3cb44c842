package models

import "time"

// Product is a catalog entry. This service reads products only; the admin
// dashboard owns their lifecycle.
type Product struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
