package reactive

import (
	"context"
	"sync"
)

// Watch delivers the values of v on a channel until ctx is done, at which
// point the subscription is released and the channel closed.
//
// The channel holds only the latest undelivered value: a slow reader skips
// intermediate values rather than blocking propagation.
func Watch[T any](ctx context.Context, v Value[T]) <-chan T {
	ch := make(chan T, 1)

	var (
		mu     sync.Mutex
		closed bool
	)

	deliver := func(value T) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case <-ch:
		default:
		}
		ch <- value
	}

	sub := v.Subscribe(deliver)

	go func() {
		<-ctx.Done()
		sub.Unsubscribe()

		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch
}
