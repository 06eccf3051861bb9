// Package lock serializes reminder evaluations so two overlapping runs can
// never both observe a schedule as "not yet fired".
package lock

import "context"

// Locker hands out an exclusive lease. Acquire blocks until the lease is held
// or ctx is done; the returned release func must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context) (release func(), err error)
}
