// Package reactive provides observable cells and derived values that
// recompute synchronously when the cells they depend on change.
//
// Every cell and computed value belongs to a Graph. Writes inside a
// Graph.Batch are propagated once the outermost batch returns, so a
// derived value depending on several cells written together recomputes
// once and only ever observes the post-batch values.
//
// A graph has a single writer at a time. Readers on other goroutines that
// subscribe or create computed values wait for an in-progress batch to
// settle, so they never observe a partly applied batch. Subscribe and
// NewComputed must therefore not be called from inside Batch or from a
// compute function; subscriber callbacks may call both.
package reactive

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// consumerRank places subscriber callbacks after every derived value in
// the graph has settled.
const consumerRank = math.MaxInt

// Graph is a propagation scope shared by related cells and computed values.
type Graph struct {
	// state is held for writing from the start of the outermost batch until
	// every derived value has recomputed, and for reading by subscribers
	// computing their first value.
	state sync.RWMutex

	mu       sync.Mutex
	depth    int
	flushing bool
	pending  []*listener
	queued   map[*listener]struct{}
}

// NewGraph creates an empty propagation scope.
func NewGraph() *Graph {
	return &Graph{queued: make(map[*listener]struct{})}
}

// Batch runs fn with change propagation deferred until the outermost batch
// ends. Batches nest.
func (g *Graph) Batch(fn func()) {
	outer := g.beginBatch()
	defer g.endBatch(outer)
	fn()
}

func (g *Graph) beginBatch() bool {
	g.mu.Lock()
	outer := g.depth == 0
	g.mu.Unlock()

	if outer {
		g.state.Lock()
	}

	g.mu.Lock()
	g.depth++
	g.mu.Unlock()
	return outer
}

func (g *Graph) endBatch(outer bool) {
	g.mu.Lock()
	g.depth--
	g.mu.Unlock()

	if !outer {
		return
	}

	func() {
		defer g.state.Unlock()
		g.drain(consumerRank - 1)
	}()
	g.flush()
}

// read runs fn while no batch is being applied.
func (g *Graph) read(fn func()) {
	g.state.RLock()
	defer g.state.RUnlock()
	fn()
}

// propagate queues listeners for the end of the current batch.
func (g *Graph) propagate(listeners []*listener) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, l := range listeners {
		if !l.active.Load() {
			continue
		}
		if _, ok := g.queued[l]; ok {
			continue
		}
		g.queued[l] = struct{}{}
		g.pending = append(g.pending, l)
	}
}

// flush runs queued subscriber callbacks. Reentrant calls return
// immediately and leave their work to the running flush.
func (g *Graph) flush() {
	g.mu.Lock()
	if g.flushing {
		g.mu.Unlock()
		return
	}
	g.flushing = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.flushing = false
		g.mu.Unlock()
	}()

	g.drain(consumerRank)
}

// drain runs queued listeners up to maxRank, lowest rank first. A listener
// queued by several writes runs once. If a listener panics the rest of the
// queue is dropped.
func (g *Graph) drain(maxRank int) {
	completed := false
	defer func() {
		if !completed {
			g.discardPending()
		}
	}()

	for {
		l := g.next(maxRank)
		if l == nil {
			break
		}
		if l.active.Load() {
			l.run()
		}
	}
	completed = true
}

func (g *Graph) discardPending() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = nil
	clear(g.queued)
}

// next removes and returns the earliest queued listener of the lowest rank,
// or nil when that rank is above maxRank.
func (g *Graph) next(maxRank int) *listener {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.pending) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(g.pending); i++ {
		if g.pending[i].rank < g.pending[best].rank {
			best = i
		}
	}

	l := g.pending[best]
	if l.rank > maxRank {
		return nil
	}
	g.pending = append(g.pending[:best], g.pending[best+1:]...)
	delete(g.queued, l)
	return l
}

// listener is a callback registered on one or more nodes.
type listener struct {
	id     uuid.UUID
	rank   int
	run    func()
	active atomic.Bool
}

func newListener(rank int, run func()) *listener {
	l := &listener{id: uuid.New(), rank: rank, run: run}
	l.active.Store(true)
	return l
}

// node is the observable part shared by cells and computed values.
type node struct {
	graph     *Graph
	rank      int
	mu        sync.RWMutex
	listeners []*listener
}

func newNode(g *Graph, rank int) *node {
	return &node{graph: g, rank: rank}
}

func (n *node) add(l *listener) {
	n.mu.Lock()
	defer n.mu.Unlock()

	listeners := make([]*listener, 0, len(n.listeners)+1)
	listeners = append(listeners, n.listeners...)
	n.listeners = append(listeners, l)
}

// remove detaches the listener registered under id.
func (n *node) remove(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	listeners := make([]*listener, 0, len(n.listeners))
	for _, existing := range n.listeners {
		if existing.id != id {
			listeners = append(listeners, existing)
		}
	}
	n.listeners = listeners
}

func (n *node) notify() {
	n.mu.RLock()
	listeners := n.listeners
	n.mu.RUnlock()

	n.graph.propagate(listeners)
}

func (n *node) listenerCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
