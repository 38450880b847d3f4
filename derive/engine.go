// Package derive turns a live lot.Record into presentation values that
// recompute whenever the fields they depend on change.
package derive

import (
	"log/slog"
	"sync"

	"github.com/cloudx-io/openlot/core"
	"github.com/cloudx-io/openlot/lot"
	"github.com/cloudx-io/openlot/reactive"
)

// Engine owns the derived values of one record.
//
// Each derived value declares its dependencies explicitly and recomputes
// synchronously when any of them changes. Subscribers receive the current
// value on subscription and a new value after every recomputation.
type Engine struct {
	record *lot.Record
	config engineConfig

	estimateString          *reactive.Computed[string]
	numberOfBids            *reactive.Computed[string]
	numberOfBidsWithReserve *reactive.Computed[string]
	lotNumberLabel          *reactive.Computed[string]
	forSale                 *reactive.Computed[bool]
	currentBid              *reactive.Computed[string]

	closeOnce sync.Once
}

type engineConfig struct {
	bidPrefix        string
	missingBidPrefix string
	logger           *slog.Logger
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithBidPrefixes sets the text placed before the current bid amount:
// prefix when a highest bid exists, missingPrefix when falling back to the
// opening bid. Both default to empty.
func WithBidPrefixes(prefix, missingPrefix string) Option {
	return func(c *engineConfig) {
		c.bidPrefix = prefix
		c.missingBidPrefix = missingPrefix
	}
}

// WithLogger sets the logger used for debug tracing of recomputations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewEngine attaches derived values to rec. Call Close to detach them.
func NewEngine(rec *lot.Record, opts ...Option) *Engine {
	cfg := engineConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.logger = cfg.logger.With(slog.String("component", "derive"), slog.String("lot_id", rec.ID()))

	e := &Engine{record: rec, config: cfg}
	g := rec.Graph()

	e.estimateString = reactive.NewComputed(g, traced(cfg.logger, "estimate_string", e.computeEstimateString),
		rec.EstimateCents(), rec.LowEstimateCents(), rec.HighEstimateCents())

	e.numberOfBids = reactive.NewComputed(g, traced(cfg.logger, "number_of_bids", e.computeNumberOfBids),
		rec.BidCount())

	// highest_bid_cents only triggers a recomputation; its value is not read.
	e.numberOfBidsWithReserve = reactive.NewComputed(g, traced(cfg.logger, "number_of_bids_with_reserve", e.computeNumberOfBidsWithReserve),
		e.numberOfBids, rec.ReserveStatus(), rec.HighestBidCents())

	e.lotNumberLabel = reactive.NewComputed(g, traced(cfg.logger, "lot_number_label", e.computeLotNumberLabel),
		rec.LotNumber())

	e.forSale = reactive.NewComputed(g, traced(cfg.logger, "for_sale", e.computeForSale),
		rec.Artwork().SoldStatus())

	// opening_bid_cents is read at emission time but not observed.
	e.currentBid = reactive.NewComputed(g, traced(cfg.logger, "current_bid", e.computeCurrentBid),
		rec.HighestBidCents())

	return e
}

func traced[T any](logger *slog.Logger, name string, compute func() T) func() T {
	return func() T {
		v := compute()
		logger.Debug("derived value recomputed", slog.String("value_name", name), slog.Any("value", v))
		return v
	}
}

func (e *Engine) computeEstimateString() string {
	return core.EstimateString(core.EstimateInputs{
		EstimateCents:     e.record.EstimateCents().Get(),
		LowEstimateCents:  e.record.LowEstimateCents().Get(),
		HighEstimateCents: e.record.HighEstimateCents().Get(),
	})
}

func (e *Engine) computeNumberOfBids() string {
	return core.NumberOfBids(e.record.BidCount().Get())
}

func (e *Engine) computeNumberOfBidsWithReserve() string {
	return core.NumberOfBidsWithReserve(core.ReserveInputs{
		NumberOfBids:  e.numberOfBids.Get(),
		ReserveStatus: core.ParseOptionalReserveStatus(e.record.ReserveStatus().Get()),
	})
}

func (e *Engine) computeLotNumberLabel() string {
	return core.LotNumberLabel(e.record.LotNumber().Get())
}

func (e *Engine) computeForSale() bool {
	return core.ForSale(e.record.Artwork().SoldStatus().Get())
}

func (e *Engine) computeCurrentBid() string {
	return core.CurrentBid(core.CurrentBidInputs{
		HighestBidCents:  e.record.HighestBidCents().Get(),
		OpeningBidCents:  e.record.OpeningBidCents().Get(),
		BidPrefix:        e.config.bidPrefix,
		MissingBidPrefix: e.config.missingBidPrefix,
	})
}

// Record returns the record the engine derives from.
func (e *Engine) Record() *lot.Record { return e.record }

// EstimateString is "Estimate: $5,000", "Estimate: $1,000–$2,000" or "No Estimate".
func (e *Engine) EstimateString() reactive.Value[string] { return e.estimateString }

// NumberOfBids is "0 bids placed", "1 bid placed", "2 bids placed", ...
func (e *Engine) NumberOfBids() reactive.Value[string] { return e.numberOfBids }

// NumberOfBidsWithReserve is NumberOfBids decorated with the reserve state.
func (e *Engine) NumberOfBidsWithReserve() reactive.Value[string] { return e.numberOfBidsWithReserve }

// LotNumberLabel is "Lot 7", or empty when the lot number is unknown.
func (e *Engine) LotNumberLabel() reactive.Value[string] { return e.lotNumberLabel }

// ForSale reports whether the artwork is unsold.
func (e *Engine) ForSale() reactive.Value[bool] { return e.forSale }

// CurrentBid is the highest bid behind the bid prefix, or the opening bid
// (zero when unknown) behind the missing-bid prefix.
func (e *Engine) CurrentBid() reactive.Value[string] { return e.currentBid }

// Snapshot holds the current value of every derived value.
type Snapshot struct {
	EstimateString          string
	NumberOfBids            string
	NumberOfBidsWithReserve string
	LotNumberLabel          string
	ForSale                 bool
	CurrentBid              string
}

// Snapshot reads every derived value.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		EstimateString:          e.estimateString.Get(),
		NumberOfBids:            e.numberOfBids.Get(),
		NumberOfBidsWithReserve: e.numberOfBidsWithReserve.Get(),
		LotNumberLabel:          e.lotNumberLabel.Get(),
		ForSale:                 e.forSale.Get(),
		CurrentBid:              e.currentBid.Get(),
	}
}

// Close detaches every derived value from the record. Subscribers stop
// receiving values; the record itself is unaffected. Close is idempotent.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.estimateString.Close()
		e.numberOfBids.Close()
		e.numberOfBidsWithReserve.Close()
		e.lotNumberLabel.Close()
		e.forSale.Close()
		e.currentBid.Close()
		e.config.logger.Debug("derived values detached")
	})
}
