package lot

import "encoding/json"

// fullPayload returns a payload with every supported key set, shaped the way
// encoding/json decodes it into map[string]any.
func fullPayload() Payload {
	return Payload{
		"id":                       "lot-1",
		"sale_id":                  "sale-9",
		"opening_bid_cents":        float64(100000),
		"minimum_next_bid_cents":   float64(110000),
		"highest_bid_amount_cents": float64(105000),
		"estimate_cents":           float64(500000),
		"low_estimate_cents":       float64(400000),
		"high_estimate_cents":      float64(600000),
		"bidder_positions_count":   float64(3),
		"reserve_status":           "reserve_not_met",
		"lot_number":               float64(7),
		"highest_bid":              map[string]any{"amount_cents": float64(105000)},
		"user_bidder_position":     map[string]any{"max_bid_amount_cents": float64(120000)},
		"bidder_positions":         []any{map[string]any{"id": "pos-1"}},
		"artwork": map[string]any{
			"id":        "artwork-1",
			"title":     "Untitled (Blue)",
			"image_url": "https://example.com/a.jpg",
			"images":    []any{map[string]any{"image_url": "https://example.com/a.jpg"}},
			"sold":      false,
		},
	}
}

func decode(raw string) Payload {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		panic(err)
	}
	return p
}
