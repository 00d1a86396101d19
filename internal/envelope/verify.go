package envelope

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/asn1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"time"
)

// FreshnessWindow bounds both clock-skew tolerance and payload replay
// window. It is not configurable: widening it weakens the freshness
// guarantee described alongside it.
const FreshnessWindow = 30 * time.Second

// Clock supplies the local wall clock. Production code uses the real
// system clock; tests inject a fixed one to satisfy determinism (P5).
type Clock interface {
	Now() time.Time
}

// NTPSource supplies an independently-obtained network timestamp. The
// verifier calls this exactly once per Verify call; no caching is
// permitted between verifications (spec invariant I3).
type NTPSource interface {
	Now(ctx context.Context) (time.Time, error)
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Sentinel causes. The root package maps these to its Kind taxonomy via
// errors.Is; kept plain here so this package has no dependency on the
// root package.
var (
	ErrFailedToParseBody       = errors.New("failed to parse body")
	ErrFailedToGetData         = errors.New("failed to get data")
	ErrFailedToGetSignature    = errors.New("failed to get signature")
	ErrFailedToDecodeData      = errors.New("failed to decode data")
	ErrFailedToDecodeSignature = errors.New("failed to decode signature")
	ErrFailedToParseData       = errors.New("failed to parse data")
	ErrFailedToGetTimestamp    = errors.New("failed to get timestamp")
	ErrFailedToParseTimestamp  = errors.New("failed to parse timestamp")
	ErrHWIDMismatch            = errors.New("hwid mismatch")
	ErrOldResponse             = errors.New("old response")
	ErrInvalidSignature        = errors.New("invalid signature")
)

// Verify runs the seven-step pipeline against body, the raw HTTPS response
// bytes for an /initialize, /authenticate, or /heartbeat call. key is
// whichever public key governs this call: the app key for
// initialize/authenticate, the user's session key for heartbeat. hwid is
// the locally-computed MachineIdentity to bind against.
//
// Later steps never run once an earlier one has failed.
func Verify(ctx context.Context, key *ecdsa.PublicKey, body []byte, hwid string, clock Clock, ntp NTPSource) (Payload, error) {
	// Step 1: parse envelope.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Payload{}, ErrFailedToParseBody
	}

	dataRaw, ok := raw["data"]
	if !ok {
		return Payload{}, ErrFailedToGetData
	}
	var dataB64 string
	if err := json.Unmarshal(dataRaw, &dataB64); err != nil {
		return Payload{}, ErrFailedToGetData
	}

	sigRaw, ok := raw["signature"]
	if !ok {
		return Payload{}, ErrFailedToGetSignature
	}
	var sigB64 string
	if err := json.Unmarshal(sigRaw, &sigB64); err != nil {
		return Payload{}, ErrFailedToGetSignature
	}

	// Step 2: base64-decode both fields. Standard and URL-safe alphabets,
	// padded and unpadded, are all accepted.
	dataBytes, err := decodeBase64Any(dataB64)
	if err != nil {
		return Payload{}, ErrFailedToDecodeData
	}
	sigBytes, err := decodeBase64Any(sigB64)
	if err != nil {
		return Payload{}, ErrFailedToDecodeSignature
	}

	// Step 3: parse payload JSON.
	var payloadFields map[string]json.RawMessage
	if err := json.Unmarshal(dataBytes, &payloadFields); err != nil {
		return Payload{}, ErrFailedToParseData
	}

	hwidRaw, ok := payloadFields["hwid"]
	if !ok {
		return Payload{}, ErrFailedToParseData
	}
	var payloadHWID string
	if err := json.Unmarshal(hwidRaw, &payloadHWID); err != nil {
		return Payload{}, ErrFailedToParseData
	}

	tsRaw, ok := payloadFields["timestamp"]
	if !ok {
		return Payload{}, ErrFailedToGetTimestamp
	}
	var payloadTimestamp uint64
	if err := json.Unmarshal(tsRaw, &payloadTimestamp); err != nil {
		return Payload{}, ErrFailedToParseTimestamp
	}

	payload := Payload{HWID: payloadHWID, Timestamp: payloadTimestamp}
	if inner, ok := payloadFields["data"]; ok {
		payload.Data = json.RawMessage(inner)
	}

	// Step 4: HWID binding.
	if payload.HWID != hwid {
		return Payload{}, ErrHWIDMismatch
	}

	// Step 5: freshness. The network timestamp is fetched fresh on every
	// call; no sample is reused across verifications.
	tNet, err := ntp.Now(ctx)
	if err != nil {
		// NTP sub-failures propagate as-is; the root package maps the
		// wrapped cause to one of the four NTP error kinds via errors.Is.
		return Payload{}, err
	}
	tSys := clock.Now()
	skew := tNet.Sub(tSys)
	if skew < 0 {
		skew = -skew
	}
	payloadTime := time.Unix(int64(payload.Timestamp), 0)
	if skew > FreshnessWindow || payloadTime.Before(tSys.Add(-FreshnessWindow)) {
		return Payload{}, ErrOldResponse
	}

	// Step 6: signature verification over the exact decoded data bytes,
	// never a re-serialization of the parsed struct.
	if len(sigBytes) == 0 || len(sigBytes)%2 != 0 {
		return Payload{}, ErrInvalidSignature
	}
	half := len(sigBytes) / 2
	r := new(big.Int).SetBytes(sigBytes[:half])
	s := new(big.Int).SetBytes(sigBytes[half:])

	der, err := marshalECDSASignature(r, s)
	if err != nil {
		return Payload{}, ErrInvalidSignature
	}

	hash := sha256.Sum256(dataBytes)
	if !ecdsa.VerifyASN1(key, hash[:], der) {
		return Payload{}, ErrInvalidSignature
	}

	return payload, nil
}

// decodeBase64Any tries, in order, standard padded, standard unpadded,
// URL-safe padded, and URL-safe unpadded base64 alphabets.
func decodeBase64Any(s string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// ecdsaSignature mirrors the ASN.1 SEQUENCE{r, s} shape expected by
// ecdsa.VerifyASN1.
type ecdsaSignature struct {
	R, S *big.Int
}

func marshalECDSASignature(r, s *big.Int) ([]byte, error) {
	return asn1.Marshal(ecdsaSignature{R: r, S: s})
}
