package reactive

import "sync"

// Cell is a mutable observable value.
type Cell[T any] struct {
	n     *node
	mu    sync.RWMutex
	value T
	equal func(a, b T) bool
}

// NewCell creates a cell that ignores writes equal to its current value.
func NewCell[T comparable](g *Graph, initial T) *Cell[T] {
	return NewCellFunc(g, initial, func(a, b T) bool { return a == b })
}

// NewCellFunc creates a cell that uses equal to detect unchanged writes.
// A nil equal makes every write a change.
func NewCellFunc[T any](g *Graph, initial T, equal func(a, b T) bool) *Cell[T] {
	return &Cell[T]{n: newNode(g, 0), value: initial, equal: equal}
}

func (c *Cell[T]) source() *node { return c.n }

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores v and notifies dependents. The new value is visible to every
// reader before any listener runs. Set reports whether the value changed.
func (c *Cell[T]) Set(v T) bool {
	changed := false
	c.n.graph.Batch(func() {
		c.mu.Lock()
		if c.equal != nil && c.equal(c.value, v) {
			c.mu.Unlock()
			return
		}
		c.value = v
		c.mu.Unlock()

		changed = true
		c.n.notify()
	})
	return changed
}

// Subscribe implements Value.
func (c *Cell[T]) Subscribe(fn func(T)) *Subscription {
	return subscribe(c.n, nil, c.Get, fn)
}
