package pubsub

import "context"

// ContinuousListener maintains a broker subscription across reads.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener creates a new listener that subscribes to the broker.
// The subscription is automatically cleaned up when the context is cancelled.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Next blocks until the next event arrives. It returns false once the
// context is cancelled or the broker is closed.
func (l *ContinuousListener[T]) Next() (Event[T], bool) {
	select {
	case <-l.ctx.Done():
		return Event[T]{}, false
	case event, ok := <-l.ch:
		return event, ok
	}
}

// C returns the subscription channel for use in a select. A nil listener
// has a nil channel, which never delivers.
func (l *ContinuousListener[T]) C() <-chan Event[T] {
	if l == nil {
		return nil
	}
	return l.ch
}

// Drain returns the events that are already buffered without blocking.
func (l *ContinuousListener[T]) Drain() []Event[T] {
	if l == nil {
		return nil
	}
	var events []Event[T]
	for {
		select {
		case event, ok := <-l.ch:
			if !ok {
				return events
			}
			events = append(events, event)
		default:
			return events
		}
	}
}
