package core

import (
	"fmt"
	"strconv"
)

const (
	noEstimate     = "No Estimate"
	noBidsPlaced   = "0 bids placed"
	hasReserveText = "This lot has a reserve"
)

// EstimateInputs are the fields an estimate string is derived from.
type EstimateInputs struct {
	EstimateCents     Optional[int64]
	LowEstimateCents  Optional[int64]
	HighEstimateCents Optional[int64]
}

// ReserveInputs are the fields the reserve-aware bid count is derived from.
type ReserveInputs struct {
	NumberOfBids  string
	ReserveStatus ReserveStatus
}

// CurrentBidInputs are the fields the current bid string is derived from.
// BidPrefix is used when a highest bid exists, MissingBidPrefix otherwise.
type CurrentBidInputs struct {
	HighestBidCents  Optional[int64]
	OpeningBidCents  Optional[int64]
	BidPrefix        string
	MissingBidPrefix string
}

// EstimateString renders the estimate. An exact estimate wins over a range;
// a range needs both bounds.
func EstimateString(in EstimateInputs) string {
	if cents, ok := in.EstimateCents.Get(); ok {
		return "Estimate: " + FormatCents(cents)
	}

	low, hasLow := in.LowEstimateCents.Get()
	high, hasHigh := in.HighEstimateCents.Get()
	if hasLow && hasHigh {
		return fmt.Sprintf("Estimate: %s–%s", FormatCents(low), FormatCents(high))
	}

	return noEstimate
}

// NumberOfBids renders the bid count, e.g. "1 bid placed" or "3 bids placed".
func NumberOfBids(bidCount Optional[int64]) string {
	n, ok := bidCount.Get()
	if !ok {
		return noBidsPlaced
	}
	if n == 1 {
		return "1 bid placed"
	}
	return strconv.FormatInt(n, 10) + " bids placed"
}

// NumberOfBidsWithReserve decorates a bid count string with the reserve state.
func NumberOfBidsWithReserve(in ReserveInputs) string {
	switch {
	case !in.ReserveStatus.HasReserve():
		return in.NumberOfBids
	case in.NumberOfBids == noBidsPlaced:
		return hasReserveText
	case in.ReserveStatus.IsReserveNotMet():
		return "(" + in.NumberOfBids + ", Reserve not met)"
	default:
		return "(" + in.NumberOfBids + ", Reserve met)"
	}
}

// LotNumberLabel renders "Lot 7", or an empty string when there is no lot number.
func LotNumberLabel(lotNumber Optional[int64]) string {
	n, ok := lotNumber.Get()
	if !ok {
		return ""
	}
	return "Lot " + strconv.FormatInt(n, 10)
}

// ForSale reports whether an artwork with the given raw sold status is still for sale.
func ForSale(rawSoldStatus string) bool {
	return ParseSoldStatus(rawSoldStatus) != Sold
}

// CurrentBid renders the highest bid, falling back to the opening bid (or zero)
// behind the missing-bid prefix.
func CurrentBid(in CurrentBidInputs) string {
	if cents, ok := in.HighestBidCents.Get(); ok {
		return in.BidPrefix + FormatCents(cents)
	}
	return in.MissingBidPrefix + FormatCents(in.OpeningBidCents.OrElse(0))
}
