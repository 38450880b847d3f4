// Package lotapi adapts wire formats to and from the lot model: JSON lot
// payloads in, rendered snapshots out.
package lotapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudx-io/openlot/lot"
)

// ErrNotObject is returned when a payload is valid JSON but not an object.
var ErrNotObject = errors.New("lot payload is not a JSON object")

// DecodePayload decodes a JSON object into a lot.Payload. Numbers are kept
// as json.Number so large cent amounts survive intact. Field types are not
// validated; lot.FromPayload treats mistyped fields as absent.
func DecodePayload(data []byte) (lot.Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode lot payload: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	return lot.Payload(obj), nil
}

// DecodePayloads decodes a JSON array of lot objects, e.g. a sale listing.
func DecodePayloads(data []byte) ([]lot.Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode lot payloads: %w", err)
	}

	payloads := make([]lot.Payload, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("lot payload %d: %w", i, ErrNotObject)
		}
		payloads = append(payloads, lot.Payload(obj))
	}

	return payloads, nil
}
