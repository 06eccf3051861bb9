package service

import (
	"context"

	"pillulu/internal/domain/entity"
	"pillulu/internal/domain/evaluator"
)

// DeliveryService mirrors in-app notifications to outbound channels.
// Delivery is best effort and never affects the evaluation that raised them.
type DeliveryService interface {
	// Enqueue queues events for delivery without blocking.
	Enqueue(events []evaluator.Event)
	// Start launches the delivery workers.
	Start(workers int)
	// Stop drains the queue and waits for the workers to finish.
	Stop()
}

// Channel is one outbound delivery route.
type Channel interface {
	Name() string
	// Accepts reports whether the user can be reached on this channel.
	Accepts(user *entity.User) bool
	Deliver(ctx context.Context, user *entity.User, ev evaluator.Event) error
}
