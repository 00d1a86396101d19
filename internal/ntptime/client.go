// Package ntptime implements a minimal NTPv3 client sufficient to recover
// a single wall-clock reading from a remote time server. It is the
// independent time source the envelope verifier cross-checks against the
// local clock; it deliberately does not attempt clock discipline,
// averaging, or multi-sample filtering.
package ntptime

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"time"
)

// ntpEpochDelta is the number of seconds between the NTP epoch
// (1900-01-01) and the Unix epoch (1970-01-01).
const ntpEpochDelta = 2208988800

const packetSize = 48

// liVnMode sets LI=0 (no warning), VN=4 (NTPv4 wire-compatible with v3
// clients), mode=3 (client).
const liVnMode = 0x23

// DefaultServer is used when no override is configured.
const DefaultServer = "time.cloudflare.com:123"

// Client performs a single NTP request/response exchange per call to Now.
// It holds no persistent socket or cached sample between calls.
type Client struct {
	Server  string
	Timeout time.Duration
}

// New returns a Client targeting server, or DefaultServer if empty.
func New(server string) *Client {
	if server == "" {
		server = DefaultServer
	}
	return &Client{Server: server, Timeout: 5 * time.Second}
}

// Now performs a fresh UDP round trip and returns the server's reported
// wall-clock time. A new socket is opened and closed for every call; no
// state survives between invocations.
func (c *Client) Now(ctx context.Context) (time.Time, error) {
	server := c.Server
	if server == "" {
		server = DefaultServer
	}

	dialer := &net.Dialer{Timeout: c.effectiveTimeout()}
	conn, err := dialer.DialContext(ctx, "udp", server)
	if err != nil {
		if isResolveError(err) {
			return time.Time{}, fmt.Errorf("resolve %s: %w", server, ErrFailedToResolveHostname)
		}
		return time.Time{}, fmt.Errorf("dial %s: %w", server, ErrFailedToBuildConnection)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(c.effectiveTimeout()))
	}

	packet := make([]byte, packetSize)
	packet[0] = liVnMode

	if _, err := conn.Write(packet); err != nil {
		return time.Time{}, fmt.Errorf("send packet to %s: %w", server, ErrFailedToSendPacket)
	}

	reply := make([]byte, packetSize)
	n, err := conn.Read(reply)
	if err != nil {
		return time.Time{}, fmt.Errorf("receive packet from %s: %w", server, ErrFailedToReceivePacket)
	}
	if n < 44 {
		return time.Time{}, fmt.Errorf("short NTP reply from %s (%d bytes): %w", server, n, ErrFailedToReceivePacket)
	}

	transmitSeconds := binary.BigEndian.Uint32(reply[40:44])
	unixSeconds := int64(transmitSeconds) - ntpEpochDelta
	return time.Unix(unixSeconds, 0).UTC(), nil
}

func (c *Client) effectiveTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.Timeout
}

func isResolveError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// Sentinel causes, distinguished for error-kind mapping in the root
// package. Kept as plain errors here so internal/ntptime has no dependency
// on the root package's error taxonomy; the root package maps these via
// errors.Is at the call site.
var (
	ErrFailedToResolveHostname = errors.New("failed to resolve hostname")
	ErrFailedToBuildConnection = errors.New("failed to build connection")
	ErrFailedToSendPacket      = errors.New("failed to send packet")
	ErrFailedToReceivePacket   = errors.New("failed to receive packet")
)
