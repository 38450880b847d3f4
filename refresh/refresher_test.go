package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/cloudx-io/openlot/derive"
	"github.com/cloudx-io/openlot/lot"
)

func staticFetcher(p lot.Payload) FetcherFunc {
	return func(context.Context, string) (lot.Payload, error) {
		return p, nil
	}
}

func TestRefreshOnce_MergesIntoTarget(t *testing.T) {
	target := lot.FromPayload(lot.Payload{"id": "lot-1", "lot_number": 3})
	engine := derive.NewEngine(target)
	defer engine.Close()

	var bids []string
	sub := engine.NumberOfBids().Subscribe(func(v string) { bids = append(bids, v) })
	defer sub.Unsubscribe()

	r := New(target, staticFetcher(lot.Payload{"id": "lot-1", "bidder_positions_count": 2}), time.Second, nil)

	result, err := r.RefreshOnce(context.Background())
	assert.NoError(t, err)
	check.True(t, result.Changed)
	check.NotEqual(t, result.FingerprintBefore, result.FingerprintAfter)
	check.Equal(t, target.Fingerprint(), result.FingerprintAfter)

	check.Equal(t, []string{"0 bids placed", "2 bids placed"}, bids)
	check.Equal(t, int64(3), target.LotNumber().Get().OrElse(0))

	result, err = r.RefreshOnce(context.Background())
	assert.NoError(t, err)
	check.False(t, result.Changed)
	check.Equal(t, 2, len(bids))
}

func TestRefreshOnce_FetchError(t *testing.T) {
	target := lot.NewRecord("lot-1")
	before := target.Fingerprint()

	fetchErr := errors.New("unavailable")
	r := New(target, FetcherFunc(func(context.Context, string) (lot.Payload, error) {
		return nil, fetchErr
	}), time.Second, nil)

	_, err := r.RefreshOnce(context.Background())
	check.True(t, errors.Is(err, fetchErr))
	check.Equal(t, before, target.Fingerprint())
}

func TestRefreshOnce_RejectsOtherLot(t *testing.T) {
	target := lot.NewRecord("lot-1")
	before := target.Fingerprint()

	r := New(target, staticFetcher(lot.Payload{"id": "lot-2", "lot_number": 9}), time.Second, nil)

	_, err := r.RefreshOnce(context.Background())
	check.True(t, errors.Is(err, ErrLotMismatch))
	check.Equal(t, before, target.Fingerprint())
}

func TestRefreshOnce_PassesLotID(t *testing.T) {
	target := lot.NewRecord("lot-1")

	var requested string
	r := New(target, FetcherFunc(func(_ context.Context, lotID string) (lot.Payload, error) {
		requested = lotID
		return lot.Payload{"id": lotID}, nil
	}), time.Second, nil)

	_, err := r.RefreshOnce(context.Background())
	assert.NoError(t, err)
	check.Equal(t, "lot-1", requested)
}

func TestNew_DefaultInterval(t *testing.T) {
	r := New(lot.NewRecord("lot-1"), staticFetcher(nil), 0, nil)
	check.Equal(t, DefaultInterval, r.interval)
}

func TestRun_RefreshesUntilCancelled(t *testing.T) {
	target := lot.NewRecord("lot-1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fetches atomic.Int32
	r := New(target, FetcherFunc(func(context.Context, string) (lot.Payload, error) {
		n := fetches.Add(1)
		if n == 1 {
			return nil, errors.New("transient")
		}
		if n >= 3 {
			cancel()
		}
		return lot.Payload{"id": "lot-1", "bidder_positions_count": int(n)}, nil
	}), time.Millisecond, nil)

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case err := <-done:
		check.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	check.True(t, fetches.Load() >= 3)
	check.True(t, target.BidCount().Get().IsPresent())
}
