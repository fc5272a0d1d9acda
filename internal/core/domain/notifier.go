package domain

import "context"

// Notification is a title/body pair dispatched when a ring closes.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notifier delivers notifications to the outside world. Delivery is fire and
// forget: callers never depend on success.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
