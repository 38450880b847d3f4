// Package lot holds the live state of an auction lot as a set of reactive
// cells, built from decoded payloads and refreshed in place by MergeInto.
package lot

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/cloudx-io/openlot/core"
	"github.com/cloudx-io/openlot/reactive"
)

// Bid is the highest bid placed on a lot.
type Bid struct {
	AmountCents int64 `json:"amount_cents"`
}

// Record is the live state of one lot within a sale.
//
// Fields are exposed read-only; the only way to change a Record after
// construction is MergeInto. A Record has a single owner: concurrent merges
// into the same Record must be serialized by the caller, while reads and
// subscriptions are safe from any goroutine.
type Record struct {
	id      string
	graph   *reactive.Graph
	artwork *Artwork

	auctionID          *reactive.Cell[core.Optional[string]]
	highestBid         *reactive.Cell[core.Optional[Bid]]
	bidCount           *reactive.Cell[core.Optional[int64]]
	userBidderPosition *reactive.Cell[any]
	positions          *reactive.Cell[any]

	openingBidCents     *reactive.Cell[core.Optional[int64]]
	minimumNextBidCents *reactive.Cell[core.Optional[int64]]
	highestBidCents     *reactive.Cell[core.Optional[int64]]
	estimateCents       *reactive.Cell[core.Optional[int64]]
	lowEstimateCents    *reactive.Cell[core.Optional[int64]]
	highEstimateCents   *reactive.Cell[core.Optional[int64]]

	reserveStatus *reactive.Cell[core.Optional[string]]
	lotNumber     *reactive.Cell[core.Optional[int64]]
}

// NewRecord creates a record with every optional field unset.
func NewRecord(id string) *Record {
	return FromPayload(Payload{keyID: id})
}

// FromPayload builds a Record from a decoded payload. Every field is read
// independently; a missing or mistyped field is left unset.
func FromPayload(p Payload) *Record {
	g := reactive.NewGraph()

	artworkPayload, _ := p.Object(keyArtwork)

	highestBid := core.None[Bid]()
	if bidPayload, ok := p.Object(keyHighestBid); ok {
		if cents, ok := bidPayload.Count(keyAmountCents).Get(); ok {
			highestBid = core.Some(Bid{AmountCents: cents})
		}
	}

	return &Record{
		id:      p.String(keyID).OrElse(""),
		graph:   g,
		artwork: artworkFromPayload(g, artworkPayload),

		auctionID:          reactive.NewCell(g, p.String(keySaleID)),
		highestBid:         reactive.NewCell(g, highestBid),
		bidCount:           reactive.NewCell(g, p.Count(keyBidCount)),
		userBidderPosition: reactive.NewCellFunc(g, p.Raw(keyUserBidderPosition), reflect.DeepEqual),
		positions:          reactive.NewCellFunc(g, p.Raw(keyPositions), reflect.DeepEqual),

		openingBidCents:     reactive.NewCell(g, p.Count(keyOpeningBidCents)),
		minimumNextBidCents: reactive.NewCell(g, p.Count(keyMinimumNextBidCents)),
		highestBidCents:     reactive.NewCell(g, p.Count(keyHighestBidCents)),
		estimateCents:       reactive.NewCell(g, p.Count(keyEstimateCents)),
		lowEstimateCents:    reactive.NewCell(g, p.Count(keyLowEstimateCents)),
		highEstimateCents:   reactive.NewCell(g, p.Count(keyHighEstimateCents)),

		reserveStatus: reactive.NewCell(g, p.String(keyReserveStatus)),
		lotNumber:     reactive.NewCell(g, p.Count(keyLotNumber)),
	}
}

// ID returns the lot id. It never changes.
func (r *Record) ID() string { return r.id }

// Graph is the propagation scope shared by every field of the record.
func (r *Record) Graph() *reactive.Graph { return r.graph }

// Artwork returns the owned artwork. The pointer is stable for the life of r.
func (r *Record) Artwork() *Artwork { return r.artwork }

func (r *Record) AuctionID() reactive.Value[core.Optional[string]] { return r.auctionID }
func (r *Record) HighestBid() reactive.Value[core.Optional[Bid]]   { return r.highestBid }
func (r *Record) BidCount() reactive.Value[core.Optional[int64]]   { return r.bidCount }
func (r *Record) UserBidderPosition() reactive.Value[any]          { return r.userBidderPosition }
func (r *Record) Positions() reactive.Value[any]                   { return r.positions }

func (r *Record) OpeningBidCents() reactive.Value[core.Optional[int64]] { return r.openingBidCents }
func (r *Record) MinimumNextBidCents() reactive.Value[core.Optional[int64]] {
	return r.minimumNextBidCents
}
func (r *Record) HighestBidCents() reactive.Value[core.Optional[int64]]   { return r.highestBidCents }
func (r *Record) EstimateCents() reactive.Value[core.Optional[int64]]     { return r.estimateCents }
func (r *Record) LowEstimateCents() reactive.Value[core.Optional[int64]]  { return r.lowEstimateCents }
func (r *Record) HighEstimateCents() reactive.Value[core.Optional[int64]] { return r.highEstimateCents }

// ReserveStatus is the raw server value; see core.ParseReserveStatus.
func (r *Record) ReserveStatus() reactive.Value[core.Optional[string]] { return r.reserveStatus }

// LotNumber is monotonic: once known it survives merges that omit it.
func (r *Record) LotNumber() reactive.Value[core.Optional[int64]] { return r.lotNumber }

// Fingerprint hashes the full observable state of r, artwork included.
// Two records with equal fingerprints render identically.
func (r *Record) Fingerprint() string {
	fields := []core.HashField{
		{Name: "id", Value: r.id},
		{Name: "sale_id", Value: core.OptionalHashValue(r.auctionID.Get())},
		{Name: "highest_bid", Value: core.OptionalHashValue(r.highestBid.Get())},
		{Name: "bid_count", Value: core.OptionalHashValue(r.bidCount.Get())},
		{Name: "user_bidder_position", Value: opaqueHashValue(r.userBidderPosition.Get())},
		{Name: "positions", Value: opaqueHashValue(r.positions.Get())},
		{Name: "opening_bid_cents", Value: core.OptionalHashValue(r.openingBidCents.Get())},
		{Name: "minimum_next_bid_cents", Value: core.OptionalHashValue(r.minimumNextBidCents.Get())},
		{Name: "highest_bid_cents", Value: core.OptionalHashValue(r.highestBidCents.Get())},
		{Name: "estimate_cents", Value: core.OptionalHashValue(r.estimateCents.Get())},
		{Name: "low_estimate_cents", Value: core.OptionalHashValue(r.lowEstimateCents.Get())},
		{Name: "high_estimate_cents", Value: core.OptionalHashValue(r.highEstimateCents.Get())},
		{Name: "reserve_status", Value: core.OptionalHashValue(r.reserveStatus.Get())},
		{Name: "lot_number", Value: core.OptionalHashValue(r.lotNumber.Get())},
	}
	return core.ComputeStateHash(append(fields, r.artwork.hashFields()...))
}

// opaqueHashValue renders passthrough data canonically; encoding/json sorts map keys.
func opaqueHashValue(v any) string {
	if v == nil {
		return "-"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}
