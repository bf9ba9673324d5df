// Package notify defines the abstraction used to deliver human-readable
// availability notifications to an external channel. Delivery is best effort:
// callers log failures and move on, a lost notification never fails a batch.
package notify

import "context"

// Notifier delivers a single text message to the configured channel.
//
//go:generate mockgen -package mocknotify -source=interface.go -destination=mock/mocknotify.go *
type Notifier interface {
	Send(ctx context.Context, text string) error
}
