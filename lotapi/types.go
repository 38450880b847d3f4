package lotapi

import (
	"github.com/cloudx-io/openlot/core"
	"github.com/cloudx-io/openlot/derive"
	"github.com/cloudx-io/openlot/lot"
)

// Snapshot is the rendered state of a lot at one point in time, as handed to
// a rendering layer. Field names on the wire match the payload vocabulary.
type Snapshot struct {
	LotID       string `json:"lot_id" cbor:"1,keyasint"`
	ArtworkID   string `json:"artwork_id,omitempty" cbor:"2,keyasint,omitempty"`
	SaleID      string `json:"sale_id,omitempty" cbor:"3,keyasint,omitempty"`
	Fingerprint string `json:"fingerprint" cbor:"4,keyasint"`

	// Derived presentation values
	EstimateString          string `json:"estimate_string" cbor:"10,keyasint"`
	NumberOfBids            string `json:"number_of_bids" cbor:"11,keyasint"`
	NumberOfBidsWithReserve string `json:"number_of_bids_with_reserve" cbor:"12,keyasint"`
	LotNumberLabel          string `json:"lot_number_label" cbor:"13,keyasint"`
	ForSale                 bool   `json:"for_sale" cbor:"14,keyasint"`
	CurrentBid              string `json:"current_bid" cbor:"15,keyasint"`

	// Raw amounts behind the presentation values, in cents
	HighestBidCents     *int64 `json:"highest_bid_cents,omitempty" cbor:"20,keyasint,omitempty"`
	OpeningBidCents     *int64 `json:"opening_bid_cents,omitempty" cbor:"21,keyasint,omitempty"`
	MinimumNextBidCents *int64 `json:"minimum_next_bid_cents,omitempty" cbor:"22,keyasint,omitempty"`
	ReserveStatus       string `json:"reserve_status" cbor:"23,keyasint"`
}

// NewSnapshot combines a record's identity and raw amounts with its derived values.
func NewSnapshot(rec *lot.Record, derived derive.Snapshot) Snapshot {
	return Snapshot{
		LotID:       rec.ID(),
		ArtworkID:   rec.Artwork().ID(),
		SaleID:      rec.AuctionID().Get().OrElse(""),
		Fingerprint: rec.Fingerprint(),

		EstimateString:          derived.EstimateString,
		NumberOfBids:            derived.NumberOfBids,
		NumberOfBidsWithReserve: derived.NumberOfBidsWithReserve,
		LotNumberLabel:          derived.LotNumberLabel,
		ForSale:                 derived.ForSale,
		CurrentBid:              derived.CurrentBid,

		HighestBidCents:     optionalPtr(rec.HighestBidCents().Get()),
		OpeningBidCents:     optionalPtr(rec.OpeningBidCents().Get()),
		MinimumNextBidCents: optionalPtr(rec.MinimumNextBidCents().Get()),
		ReserveStatus:       core.ParseOptionalReserveStatus(rec.ReserveStatus().Get()).String(),
	}
}

func optionalPtr(o core.Optional[int64]) *int64 {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}
