package tsar

import (
	"crypto/ecdsa"
	"crypto/x509"
	"errors"
)

var errInvalidKeyType = errors.New("not a P-256 public key")

// parseP256PublicKey decodes a SubjectPublicKeyInfo DER encoding into a
// P-256 public key. The wire format never carries raw curve points; every
// key this package consumes — the app key and the per-user session key —
// arrives as SPKI DER, matching original_source's key distribution
// convention.
func parseP256PublicKey(der []byte) (*ecdsa.PublicKey, error) {
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, err
	}
	ecdsaPub, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return nil, errInvalidKeyType
	}
	if ecdsaPub.Curve.Params().Name != "P-256" {
		return nil, errInvalidKeyType
	}
	return ecdsaPub, nil
}
