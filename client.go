// Package tsar proves to a remote authorization service that the local
// machine is entitled to run an application, obtains a user and
// subscription record bound to that machine, and maintains a heartbeat so
// revocation or subscription expiry terminate the session within seconds.
//
// The signed-response verification pipeline (internal/envelope) is the
// trust boundary: every reply is ECDSA-P256-verified, HWID-bound, and
// checked for freshness against an independent NTP time source before any
// of its contents are surfaced.
package tsar

import (
	"context"
	"crypto/ecdsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tsarnet/tsar-go/internal/envelope"
	"github.com/tsarnet/tsar-go/internal/logger"
	"github.com/tsarnet/tsar-go/internal/ntptime"
	"github.com/tsarnet/tsar-go/internal/platform"
	"github.com/tsarnet/tsar-go/internal/transport"
)

// Client is produced only by a successful Create call; its existence is
// proof the application is known to the service and not paused. It is not
// safe for concurrent use.
type Client struct {
	appID         string
	appKey        *ecdsa.PublicKey
	hwid          string
	dashboardHost string
	baseURL       string
	binaryHash    string
	hostnameFixed bool
	transport     *transport.Client
	ntp           *ntptime.Client
	clock         envelope.Clock
	log           logger.Logger
}

// Create validates the app ID and client key, resolves this machine's
// hardware identifier, and calls /initialize. Its envelope is verified
// under the app's public key; the server's declared dashboard_hostname is
// captured for later browser-redirect URLs.
func Create(ctx context.Context, appID, clientKeyB64 string, opts ...Option) (*Client, error) {
	if !validateAppID(appID) {
		return nil, wrap(KindInvalidAppID, nil)
	}
	if !validateClientKeyB64(clientKeyB64) {
		return nil, wrap(KindInvalidClientKey, nil)
	}

	keyDER, err := base64.StdEncoding.DecodeString(clientKeyB64)
	if err != nil {
		return nil, wrap(KindFailedToDecodePublicKey, err)
	}
	appKey, err := parseP256PublicKey(keyDER)
	if err != nil {
		return nil, wrap(KindFailedToDecodePublicKey, err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	hwid, err := platform.HWID()
	if err != nil {
		return nil, wrap(KindFailedToGetHWID, err)
	}

	c := &Client{
		appID:      appID,
		appKey:     appKey,
		hwid:       hwid,
		baseURL:    cfg.baseURL,
		binaryHash: cfg.binaryHash,
		transport:  transport.New(cfg.httpClient, cfg.log),
		ntp:        ntptime.New(cfg.ntpServer),
		clock:      envelope.SystemClock{},
		log:        cfg.log,
	}

	if cfg.hostnameOverride != "" {
		c.dashboardHost = cfg.hostnameOverride
		c.hostnameFixed = true
	}

	url := fmt.Sprintf("%s/initialize?app_id=%s&hwid=%s", c.baseURL, appID, hwid)
	if c.binaryHash != "" {
		url += "&hash=" + c.binaryHash
	}

	body, err := c.transport.Get(ctx, url)
	if err != nil {
		return nil, mapTransportErr(err)
	}

	payload, err := envelope.Verify(ctx, c.appKey, body, c.hwid, c.clock, ntpAdapter{c.ntp})
	if err != nil {
		return nil, mapEnvelopeErr(err)
	}

	var init struct {
		DashboardHostname string `json:"dashboard_hostname"`
	}
	if err := decodeInner(payload, &init); err != nil {
		return nil, wrap(KindUnexpectedError, err)
	}
	if !c.hostnameFixed {
		c.dashboardHost = init.DashboardHostname
	}

	c.log.Info("client initialized", logger.String("app_id", appID))
	return c, nil
}

// ntpAdapter adapts *ntptime.Client to envelope.NTPSource without giving
// internal/envelope a direct dependency on internal/ntptime.
type ntpAdapter struct{ c *ntptime.Client }

func (a ntpAdapter) Now(ctx context.Context) (time.Time, error) {
	return a.c.Now(ctx)
}

// decodeInner unmarshals the endpoint-specific inner object carried by a
// verified payload. A payload without one is an error; its top-level
// fields are not used in its place.
func decodeInner(payload envelope.Payload, v any) error {
	if len(payload.Data) == 0 {
		return fmt.Errorf("payload has no inner data object")
	}
	return json.Unmarshal(payload.Data, v)
}
