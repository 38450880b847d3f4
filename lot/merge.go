package lot

// MergeInto copies every field of source onto target in place, so existing
// subscribers keep observing target. The id is never copied, and a lot
// number absent from source leaves target's lot number in place. The
// artwork is merged through Artwork.MergeFrom rather than replaced.
//
// All writes form one batch: each derived value depending on the changed
// fields recomputes once, after every field has been written. Fields whose
// value is unchanged notify nobody, so merging the same source twice is
// observably a single merge.
func MergeInto(target, source *Record) {
	if target == nil || source == nil {
		return
	}

	target.graph.Batch(func() {
		target.auctionID.Set(source.auctionID.Get())
		target.highestBid.Set(source.highestBid.Get())
		target.bidCount.Set(source.bidCount.Get())
		target.userBidderPosition.Set(source.userBidderPosition.Get())
		target.positions.Set(source.positions.Get())

		target.openingBidCents.Set(source.openingBidCents.Get())
		target.minimumNextBidCents.Set(source.minimumNextBidCents.Get())
		target.highestBidCents.Set(source.highestBidCents.Get())
		target.estimateCents.Set(source.estimateCents.Get())
		target.lowEstimateCents.Set(source.lowEstimateCents.Get())
		target.highEstimateCents.Set(source.highEstimateCents.Get())

		target.reserveStatus.Set(source.reserveStatus.Get())
		target.lotNumber.Set(source.lotNumber.Get().Or(target.lotNumber.Get()))

		target.artwork.MergeFrom(source.artwork)
	})
}
