package lot

import (
	"encoding/json"
	"math"

	"github.com/cloudx-io/openlot/core"
)

// Payload keys understood by FromPayload.
const (
	keyID                  = "id"
	keyArtwork             = "artwork"
	keySaleID              = "sale_id"
	keyHighestBid          = "highest_bid"
	keyAmountCents         = "amount_cents"
	keyBidCount            = "bidder_positions_count"
	keyUserBidderPosition  = "user_bidder_position"
	keyPositions           = "bidder_positions"
	keyOpeningBidCents     = "opening_bid_cents"
	keyMinimumNextBidCents = "minimum_next_bid_cents"
	keyHighestBidCents     = "highest_bid_amount_cents"
	keyEstimateCents       = "estimate_cents"
	keyLowEstimateCents    = "low_estimate_cents"
	keyHighEstimateCents   = "high_estimate_cents"
	keyReserveStatus       = "reserve_status"
	keyLotNumber           = "lot_number"

	keyTitle      = "title"
	keyImageURL   = "image_url"
	keyImages     = "images"
	keySoldStatus = "sold_status"
	keySold       = "sold"
)

// Payload is a decoded key-value record as produced by a JSON decoder.
// Lookups never fail: a missing or wrong-typed value reads as absent.
type Payload map[string]any

// String returns the string at key.
func (p Payload) String(key string) core.Optional[string] {
	if s, ok := p[key].(string); ok {
		return core.Some(s)
	}
	return core.None[string]()
}

// Bool returns the boolean at key.
func (p Payload) Bool(key string) core.Optional[bool] {
	if b, ok := p[key].(bool); ok {
		return core.Some(b)
	}
	return core.None[bool]()
}

// Int returns the integer at key. Fractional and out-of-range numbers are absent.
func (p Payload) Int(key string) core.Optional[int64] {
	switch v := p[key].(type) {
	case int:
		return core.Some(int64(v))
	case int32:
		return core.Some(int64(v))
	case int64:
		return core.Some(v)
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return core.None[int64]()
		}
		return core.Some(int64(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return core.None[int64]()
		}
		return core.Some(n)
	default:
		return core.None[int64]()
	}
}

// Count returns the non-negative integer at key. Negative values are absent.
func (p Payload) Count(key string) core.Optional[int64] {
	n, ok := p.Int(key).Get()
	if !ok || n < 0 {
		return core.None[int64]()
	}
	return core.Some(n)
}

// Object returns the nested object at key.
func (p Payload) Object(key string) (Payload, bool) {
	switch v := p[key].(type) {
	case map[string]any:
		return Payload(v), true
	case Payload:
		return v, true
	default:
		return nil, false
	}
}

// Raw returns the value at key without interpretation, or nil.
func (p Payload) Raw(key string) any {
	return p[key]
}
