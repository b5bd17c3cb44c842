package repository

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrOrderNotFound    = errors.New("order not found")
)
