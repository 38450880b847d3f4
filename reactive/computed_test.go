package reactive

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestComputed_RecomputesOnDependencyChange(t *testing.T) {
	g := NewGraph()
	a := NewCell(g, 2)
	b := NewCell(g, 3)

	calls := 0
	sum := NewComputed(g, func() int {
		calls++
		return a.Get() + b.Get()
	}, a, b)
	defer sum.Close()

	check.Equal(t, 5, sum.Get())
	check.Equal(t, 1, calls)

	a.Set(10)
	check.Equal(t, 13, sum.Get())
	check.Equal(t, 2, calls)
}

func TestComputed_BatchRecomputesOnce(t *testing.T) {
	g := NewGraph()
	a := NewCell(g, 0)
	b := NewCell(g, 0)
	c := NewCell(g, 0)

	sum := NewComputed(g, func() int { return a.Get() + b.Get() + c.Get() }, a, b, c)
	defer sum.Close()

	var got []int
	sub := sum.Subscribe(func(v int) { got = append(got, v) })
	defer sub.Unsubscribe()

	g.Batch(func() {
		a.Set(1)
		b.Set(2)
		c.Set(3)
	})

	check.Equal(t, []int{0, 6}, got)
}

func TestComputed_NestedBatchesFlushAtOutermost(t *testing.T) {
	g := NewGraph()
	a := NewCell(g, 0)

	var got []int
	sub := a.Subscribe(func(v int) { got = append(got, v) })
	defer sub.Unsubscribe()

	g.Batch(func() {
		g.Batch(func() { a.Set(1) })
		check.Equal(t, []int{0}, got)
		a.Set(2)
	})

	check.Equal(t, []int{0, 2}, got)
}

func TestComputed_DiamondIsGlitchFree(t *testing.T) {
	// a -> doubled -> total
	// a -----------> total
	g := NewGraph()
	a := NewCell(g, 1)

	doubled := NewComputed(g, func() int { return a.Get() * 2 }, a)
	defer doubled.Close()

	var observed [][2]int
	total := NewComputed(g, func() int {
		observed = append(observed, [2]int{a.Get(), doubled.Get()})
		return a.Get() + doubled.Get()
	}, doubled, a)
	defer total.Close()

	var got []int
	sub := total.Subscribe(func(v int) { got = append(got, v) })
	defer sub.Unsubscribe()

	a.Set(5)

	check.Equal(t, []int{3, 15}, got)
	for _, pair := range observed {
		check.Equal(t, pair[0]*2, pair[1])
	}
}

func TestComputed_NotifiesEvenWhenValueUnchanged(t *testing.T) {
	g := NewGraph()
	a := NewCell(g, 1)

	parity := NewComputed(g, func() bool { return a.Get()%2 == 0 }, a)
	defer parity.Close()

	count := 0
	sub := parity.Subscribe(func(bool) { count++ })
	defer sub.Unsubscribe()

	a.Set(3)

	check.Equal(t, 2, count)
	check.False(t, parity.Get())
}

func TestComputed_SubscribeComputesFromCurrentState(t *testing.T) {
	g := NewGraph()
	watched := NewCell(g, 1)
	unwatched := NewCell(g, 100)

	sum := NewComputed(g, func() int { return watched.Get() + unwatched.Get() }, watched)
	defer sum.Close()

	unwatched.Set(200)

	var got []int
	sub := sum.Subscribe(func(v int) { got = append(got, v) })
	defer sub.Unsubscribe()

	check.Equal(t, []int{201}, got)
}

func TestComputed_CloseDetaches(t *testing.T) {
	g := NewGraph()
	a := NewCell(g, 0)

	doubled := NewComputed(g, func() int { return a.Get() * 2 }, a)
	check.Equal(t, 1, Subscribers(a))

	count := 0
	sub := doubled.Subscribe(func(int) { count++ })
	defer sub.Unsubscribe()

	doubled.Close()
	doubled.Close()
	check.Equal(t, 0, Subscribers(a))

	a.Set(1)
	check.Equal(t, 1, count)
	check.Equal(t, 0, doubled.Get())
}

func TestComputed_PanicDoesNotWedgeGraph(t *testing.T) {
	g := NewGraph()
	a := NewCell(g, 0)

	sub := a.Subscribe(func(v int) {
		if v == 1 {
			panic("boom")
		}
	})

	func() {
		defer func() { _ = recover() }()
		a.Set(1)
	}()
	sub.Unsubscribe()

	var got []int
	next := a.Subscribe(func(v int) { got = append(got, v) })
	defer next.Unsubscribe()

	a.Set(2)
	check.Equal(t, []int{1, 2}, got)
}

func TestComputed_PanicDropsQueuedCallbacks(t *testing.T) {
	g := NewGraph()
	a := NewCell(g, 0)
	b := NewCell(g, 0)

	failing := a.Subscribe(func(v int) {
		if v == 1 {
			panic("boom")
		}
	})

	var got []int
	sub := a.Subscribe(func(v int) { got = append(got, v) })
	defer sub.Unsubscribe()

	func() {
		defer func() { _ = recover() }()
		a.Set(1)
	}()
	failing.Unsubscribe()

	b.Set(1)
	check.Equal(t, []int{0}, got)

	a.Set(2)
	check.Equal(t, []int{0, 2}, got)
}

func TestComputed_SubscribeDuringConcurrentBatches(t *testing.T) {
	// x and y are always written together: (1, 9) or (9, 1).
	g := NewGraph()
	x := NewCell(g, 1)
	y := NewCell(g, 9)

	pair := NewComputed(g, func() int { return x.Get()*100 + y.Get() }, x, y)
	defer pair.Close()

	const rounds = 5000
	var torn atomic.Int64
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range rounds {
			g.Batch(func() {
				if i%2 == 0 {
					x.Set(9)
					y.Set(1)
				} else {
					x.Set(1)
					y.Set(9)
				}
			})
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range rounds {
			sub := pair.Subscribe(func(v int) {
				if v != 109 && v != 901 {
					torn.Add(1)
				}
			})
			sub.Unsubscribe()
		}
	}()

	wg.Wait()

	check.Equal(t, int64(0), torn.Load())
	// The last batch (odd round) wrote (1, 9).
	check.Equal(t, 109, pair.Get())
}
