package tsar

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/tsarnet/tsar-go/internal/envelope"
	"github.com/tsarnet/tsar-go/internal/logger"
)

// Authenticate calls /authenticate under the app's public key. On an
// unauthorized response, if openBrowserOnUnauth is true, it opens the
// browser at the dashboard's HWID-binding URL before still returning the
// unauthorized error to the caller — the one side effect the spec
// carves out for this specific failure.
func (c *Client) Authenticate(ctx context.Context, openBrowserOnUnauth bool) (*User, error) {
	url := fmt.Sprintf("%s/authenticate?app_id=%s&hwid=%s", c.baseURL, c.appID, c.hwid)

	body, err := c.transport.Get(ctx, url)
	if err != nil {
		mapped := mapTransportErr(err)
		if tsarErr, ok := mapped.(*Error); ok && tsarErr.Kind == KindUnauthorized && openBrowserOnUnauth {
			c.openAuthBrowser()
		}
		return nil, mapped
	}

	payload, err := envelope.Verify(ctx, c.appKey, body, c.hwid, c.clock, ntpAdapter{c.ntp})
	if err != nil {
		return nil, mapEnvelopeErr(err)
	}

	var resp struct {
		ID           string       `json:"id"`
		Name         string       `json:"name"`
		Avatar       string       `json:"avatar"`
		Session      string       `json:"session"`
		SessionKey   string       `json:"session_key"`
		Subscription Subscription `json:"subscription"`
	}
	if err := decodeInner(payload, &resp); err != nil {
		return nil, wrap(KindUnexpectedError, err)
	}

	sessionKeyDER, err := base64.StdEncoding.DecodeString(resp.SessionKey)
	if err != nil {
		return nil, wrap(KindFailedToDecodeSessionKey, err)
	}
	sessionKey, err := parseP256PublicKey(sessionKeyDER)
	if err != nil {
		return nil, wrap(KindFailedToDecodeSessionKey, err)
	}

	u := &User{
		ID:            resp.ID,
		Name:          resp.Name,
		Avatar:        resp.Avatar,
		Subscription:  resp.Subscription,
		session:       resp.Session,
		sessionKeyDER: sessionKeyDER,
		sessionKey:    sessionKey,
		client:        c,
	}

	c.log.Info("authenticated", logger.String("user_id", u.ID))
	return u, nil
}

func (c *Client) openAuthBrowser() {
	if c.dashboardHost == "" {
		return
	}
	url := fmt.Sprintf("https://%s/auth/%s", c.dashboardHost, c.hwid)
	if err := openBrowserFn(url); err != nil {
		c.log.Warn("failed to open browser", logger.String("url", url), logger.Error(err))
	}
}
