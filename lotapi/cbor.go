package lotapi

import (
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// snapshotEncMode uses core deterministic encoding so equal snapshots
// produce identical bytes.
var snapshotEncMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("lotapi: invalid CBOR encoding options: %v", err))
	}
	return mode
}()

// EncodeSnapshotCBOR encodes a snapshot as deterministic CBOR with integer keys.
func EncodeSnapshotCBOR(s Snapshot) ([]byte, error) {
	data, err := snapshotEncMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshotCBOR decodes a snapshot produced by EncodeSnapshotCBOR.
func DecodeSnapshotCBOR(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// EncodeSnapshotURLSafe encodes a snapshot as unpadded base64url CBOR,
// suitable for query strings.
func EncodeSnapshotURLSafe(s Snapshot) (string, error) {
	data, err := EncodeSnapshotCBOR(s)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}
