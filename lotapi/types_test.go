package lotapi

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/cloudx-io/openlot/derive"
	"github.com/cloudx-io/openlot/lot"
)

func sampleSnapshot(t *testing.T) Snapshot {
	t.Helper()

	p, err := DecodePayload([]byte(samplePayload))
	assert.NoError(t, err)

	rec := lot.FromPayload(p)
	engine := derive.NewEngine(rec, derive.WithBidPrefixes("Current Bid: ", "Starting Bid: "))
	defer engine.Close()

	return NewSnapshot(rec, engine.Snapshot())
}

func TestNewSnapshot(t *testing.T) {
	s := sampleSnapshot(t)

	check.Equal(t, "lot-1", s.LotID)
	check.Equal(t, "artwork-1", s.ArtworkID)
	check.Equal(t, "sale-1", s.SaleID)
	check.Equal(t, 64, len(s.Fingerprint))
	check.Equal(t, "Lot 12", s.LotNumberLabel)
	check.Equal(t, "(2 bids placed, Reserve met)", s.NumberOfBidsWithReserve)
	check.Equal(t, "No Estimate", s.EstimateString)
	check.True(t, s.ForSale)
	check.Equal(t, "reserve_met", s.ReserveStatus)

	assert.NotNil(t, s.OpeningBidCents)
	check.Equal(t, int64(100000), *s.OpeningBidCents)
	check.Nil(t, s.MinimumNextBidCents)
}

func TestSnapshot_JSON(t *testing.T) {
	data, err := json.Marshal(sampleSnapshot(t))
	assert.NoError(t, err)

	var fields map[string]any
	assert.NoError(t, json.Unmarshal(data, &fields))

	check.Equal(t, "lot-1", fields["lot_id"])
	check.Equal(t, "Lot 12", fields["lot_number_label"])
	_, hasMinimum := fields["minimum_next_bid_cents"]
	check.False(t, hasMinimum)
}

func TestSnapshot_CBOR(t *testing.T) {
	s := sampleSnapshot(t)

	encoded, err := EncodeSnapshotCBOR(s)
	assert.NoError(t, err)

	again, err := EncodeSnapshotCBOR(s)
	assert.NoError(t, err)
	check.Equal(t, encoded, again)

	decoded, err := DecodeSnapshotCBOR(encoded)
	assert.NoError(t, err)
	check.Equal(t, s, decoded)

	_, err = DecodeSnapshotCBOR([]byte{0xff})
	check.Error(t, err)
}

func TestEncodeSnapshotURLSafe(t *testing.T) {
	encoded, err := EncodeSnapshotURLSafe(sampleSnapshot(t))
	assert.NoError(t, err)

	check.NotEqual(t, "", encoded)
	check.False(t, strings.ContainsAny(encoded, "+/="))
}
