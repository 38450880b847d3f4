// Package refresh keeps a live lot.Record current by periodically fetching
// the lot and merging the result into it.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cloudx-io/openlot/lot"
)

// DefaultInterval is used when Refresher.Interval is not positive.
const DefaultInterval = 30 * time.Second

// ErrLotMismatch is returned when a fetched payload describes a different lot.
var ErrLotMismatch = errors.New("fetched lot does not match target")

// Fetcher retrieves the latest payload for a lot.
type Fetcher interface {
	Fetch(ctx context.Context, lotID string) (lot.Payload, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, lotID string) (lot.Payload, error)

func (f FetcherFunc) Fetch(ctx context.Context, lotID string) (lot.Payload, error) {
	return f(ctx, lotID)
}

// Result describes one refresh cycle.
type Result struct {
	Changed           bool
	FingerprintBefore string
	FingerprintAfter  string
	RefreshedAt       time.Time
}

// Refresher is the single mutator of its target record: every merge it
// performs is serialized.
type Refresher struct {
	target   *lot.Record
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger

	mu sync.Mutex
}

// New creates a Refresher for target. A nil logger discards output.
func New(target *lot.Record, fetcher Fetcher, interval time.Duration, logger *slog.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Refresher{
		target:   target,
		fetcher:  fetcher,
		interval: interval,
		logger:   logger.With(slog.String("component", "refresh"), slog.String("lot_id", target.ID())),
	}
}

// RefreshOnce fetches the lot and merges it into the target.
func (r *Refresher) RefreshOnce(ctx context.Context) (Result, error) {
	payload, err := r.fetcher.Fetch(ctx, r.target.ID())
	if err != nil {
		return Result{}, fmt.Errorf("fetch lot %s: %w", r.target.ID(), err)
	}

	fresh := lot.FromPayload(payload)
	if fresh.ID() != "" && fresh.ID() != r.target.ID() {
		return Result{}, fmt.Errorf("%w: got %q, want %q", ErrLotMismatch, fresh.ID(), r.target.ID())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	before := r.target.Fingerprint()
	lot.MergeInto(r.target, fresh)
	after := r.target.Fingerprint()

	result := Result{
		Changed:           before != after,
		FingerprintBefore: before,
		FingerprintAfter:  after,
		RefreshedAt:       time.Now(),
	}

	if result.Changed {
		r.logger.Info("lot refreshed", slog.String("fingerprint", after))
	} else {
		r.logger.Debug("lot unchanged", slog.String("fingerprint", after))
	}

	return result, nil
}

// Run refreshes the target every interval until ctx is done. Failed
// refreshes are logged and retried on the next tick.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("refresher started", slog.Duration("interval", r.interval))
	defer r.logger.Info("refresher stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RefreshOnce(ctx); err != nil {
				r.logger.Warn("lot refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}
