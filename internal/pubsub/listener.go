package pubsub

import "context"

// Next blocks until an event arrives on ch or ctx is done.
// ok is false when the context ends or the channel is closed.
func Next[T any](ctx context.Context, ch <-chan Event[T]) (event Event[T], ok bool) {
	select {
	case <-ctx.Done():
		return event, false
	case event, ok = <-ch:
		return event, ok
	}
}

// ContinuousListener keeps one broker subscription open for repeated reads.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker; the subscription ends with ctx.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Next waits for the next event.
func (l *ContinuousListener[T]) Next() (Event[T], bool) {
	return Next(l.ctx, l.ch)
}
