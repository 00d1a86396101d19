package ntptime

import (
	"context"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startFakeServer answers every packet with a fixed transmit timestamp and
// returns the address to dial.
func startFakeServer(t *testing.T, unixSeconds int64) string {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, packetSize)
		for {
			n, addr, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			reply := make([]byte, packetSize)
			binary.BigEndian.PutUint32(reply[40:44], uint32(unixSeconds+ntpEpochDelta))
			_, _ = conn.WriteToUDP(reply, addr)
		}
	}()

	return conn.LocalAddr().String()
}

func TestClientNowParsesTransmitTimestamp(t *testing.T) {
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	addr := startFakeServer(t, want.Unix())

	c := New(addr)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := c.Now(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Unix(), got.Unix())
}

func TestClientNowFailsOnUnresolvableHost(t *testing.T) {
	c := New("this-host-does-not-resolve.invalid:123")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := c.Now(ctx)
	assert.Error(t, err)
}

func TestClientNowFailsOnContextDeadline(t *testing.T) {
	// A non-routable address (RFC 5737 TEST-NET) should never reply,
	// forcing the read deadline to fire.
	c := New("192.0.2.1:123")
	c.Timeout = 200 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := c.Now(ctx)
	assert.Error(t, err)
}
