package notification

import (
	"context"
)

// Repository defines the contract for the notification feed.
type Repository interface {
	Add(ctx context.Context, message string) error
	List(ctx context.Context) ([]Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkAllRead(ctx context.Context) error
	Clear(ctx context.Context) error
}
