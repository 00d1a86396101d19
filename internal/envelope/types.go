// Package envelope implements the signed-response verification pipeline:
// decode, bind to a hardware identifier, check freshness against an
// independent clock, and verify an ECDSA-P256 signature. This is the trust
// boundary of the whole client; nothing here recovers from a trust-class
// failure by retrying or falling back.
package envelope

import "encoding/json"

// Payload is the decoded, verified contents of an envelope's data field.
type Payload struct {
	HWID      string          `json:"hwid"`
	Timestamp uint64          `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}
