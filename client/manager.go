package client

import (
	"context"
	"sync"
)

// FeedbackManager holds the review list for one product and keeps it in sync
// with the API. Mutations are serialized: the lock is held across the network
// call so at most one create or delete is in flight, and the local list is
// updated from the mutation's own response rather than re-fetched. On any
// error the list is left as it was.
type FeedbackManager struct {
	client    *Client
	productID string

	mu    sync.Mutex
	items []Feedback
}

func NewFeedbackManager(c *Client, productID string) *FeedbackManager {
	return &FeedbackManager{client: c, productID: productID}
}

// Items returns a copy of the current list in insertion order.
func (m *FeedbackManager) Items() []Feedback {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Feedback, len(m.items))
	copy(out, m.items)
	return out
}

// Refresh replaces the list with the server's current state. Used for the
// initial load; mutations keep the list current without it.
func (m *FeedbackManager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.client.ListFeedback(ctx, m.productID)
	if err != nil {
		return err
	}
	m.items = items
	return nil
}

// Submit creates a review for the manager's product and appends the stored
// record to the list.
func (m *FeedbackManager) Submit(ctx context.Context, rating int, comment, orderID string) (*Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fb, err := m.client.CreateFeedback(ctx, CreateFeedbackRequest{
		ProductID: m.productID,
		OrderID:   orderID,
		Rating:    rating,
		Comment:   comment,
	})
	if err != nil {
		return nil, err
	}
	m.items = append(m.items, *fb)
	return fb, nil
}

// Remove deletes a review and drops it from the list.
func (m *FeedbackManager) Remove(ctx context.Context, feedbackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.client.DeleteFeedback(ctx, feedbackID); err != nil {
		return err
	}
	for i, fb := range m.items {
		if fb.ID == feedbackID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	return nil
}
