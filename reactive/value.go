package reactive

import "sync"

// Source is anything a computed value can depend on.
type Source interface {
	source() *node
}

// Value is a read-only observable value.
type Value[T any] interface {
	Source

	// Get returns the current value.
	Get() T

	// Subscribe delivers the current value to fn immediately and again after
	// every change until the subscription is cancelled.
	Subscribe(fn func(T)) *Subscription
}

// Subscribers returns the number of listeners attached to v, including
// computed values that depend on it.
func Subscribers(v Source) int {
	return v.source().listenerCount()
}

// subscribe registers fn on n and delivers the current value. prepare, when
// set, runs before the first read. Values propagated before the first
// delivery returns are held back and followed by one catch-up delivery, so
// fn always sees the current value first.
func subscribe[T any](n *node, prepare func(), get func() T, fn func(T)) *Subscription {
	var (
		mu     sync.Mutex
		ready  bool
		missed bool
	)
	l := newListener(consumerRank, func() {
		mu.Lock()
		if !ready {
			missed = true
			mu.Unlock()
			return
		}
		mu.Unlock()
		fn(get())
	})

	var current T
	n.graph.read(func() {
		if prepare != nil {
			prepare()
		}
		n.add(l)
		current = get()
	})
	fn(current)

	mu.Lock()
	ready = true
	catchUp := missed
	mu.Unlock()
	if catchUp && l.active.Load() {
		fn(get())
	}

	return newSubscription(l.id, func() {
		l.active.Store(false)
		n.remove(l.id)
	})
}
