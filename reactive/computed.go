package reactive

import "sync"

// Computed is a value derived from other sources. It recomputes every time
// one of its dependencies changes and notifies its own subscribers after
// each recomputation, even when the result is unchanged.
type Computed[T any] struct {
	n       *node
	mu      sync.RWMutex
	value   T
	compute func() T
	deps    []*node
	self    *listener
	closed  sync.Once
}

// NewComputed evaluates compute once and re-evaluates it whenever any of
// deps changes. compute must only read values; it must not block or write
// cells. deps should belong to g.
func NewComputed[T any](g *Graph, compute func() T, deps ...Source) *Computed[T] {
	rank := 0
	for _, dep := range deps {
		rank = max(rank, dep.source().rank)
	}
	rank++

	c := &Computed[T]{
		n:       newNode(g, rank),
		compute: compute,
	}
	c.self = newListener(rank, c.recompute)

	g.read(func() {
		c.value = compute()
		for _, dep := range deps {
			dn := dep.source()
			dn.add(c.self)
			c.deps = append(c.deps, dn)
		}
	})

	return c
}

func (c *Computed[T]) source() *node { return c.n }

func (c *Computed[T]) recompute() {
	c.refresh()
	c.n.notify()
}

func (c *Computed[T]) refresh() {
	v := c.compute()
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

// Get returns the most recently computed value.
func (c *Computed[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Subscribe implements Value. The value delivered immediately is computed
// from the current state of the dependencies, after any batch in progress
// has settled.
func (c *Computed[T]) Subscribe(fn func(T)) *Subscription {
	return subscribe(c.n, c.refresh, c.Get, fn)
}

// Close detaches c from its dependencies. Existing subscribers stop
// receiving values. Close is idempotent.
func (c *Computed[T]) Close() {
	c.closed.Do(func() {
		c.self.active.Store(false)
		for _, dn := range c.deps {
			dn.remove(c.self.id)
		}
	})
}
