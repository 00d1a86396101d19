package tsar

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/tsarnet/tsar-go/internal/envelope"
)

// Subscription describes the plan bound to a User. Expires is nil when
// the subscription is open-ended.
type Subscription struct {
	ID      string `json:"id"`
	Expires *int64 `json:"expires,omitempty"`
	Tier    uint32 `json:"tier"`
}

// User is created by Authenticate, refreshed by Heartbeat, and destroyed
// by the caller when a heartbeat fails or the value is dropped. It is not
// safe for concurrent use.
type User struct {
	ID           string
	Name         string
	Avatar       string
	Subscription Subscription

	session       string
	sessionKeyDER []byte
	sessionKey    *ecdsa.PublicKey
	client        *Client
}

// Heartbeat calls /heartbeat, verified under the user's session key (not
// the app key). Success returns nil and leaves User's fields unchanged —
// the server's view of the session is the only thing that can move a
// heartbeat from success to failure (idempotence, P6).
func (u *User) Heartbeat(ctx context.Context) error {
	c := u.client
	url := fmt.Sprintf("%s/heartbeat?session=%s&hwid=%s", c.baseURL, u.session, c.hwid)

	body, err := c.transport.Get(ctx, url)
	if err != nil {
		return mapTransportErr(err)
	}

	_, err = envelope.Verify(ctx, u.sessionKey, body, c.hwid, c.clock, ntpAdapter{c.ntp})
	if err != nil {
		return mapEnvelopeErr(err)
	}
	return nil
}
