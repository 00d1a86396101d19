package tsar

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsarnet/tsar-go/internal/platform"
)

// testServer builds a signed envelope for every request it receives and
// lets the test control the response status and payload contents.
type testServer struct {
	priv   *ecdsa.PrivateKey
	status int
	hwid   string
	inner  map[string]any
	ts     int64
}

func newTestServer(t *testing.T) (*httptest.Server, *testServer) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	ts := &testServer{priv: priv, status: http.StatusOK, ts: time.Now().Unix()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ts.status != http.StatusOK {
			w.WriteHeader(ts.status)
			return
		}
		payload := map[string]any{"hwid": ts.hwid, "timestamp": ts.ts}
		if ts.inner != nil {
			payload["data"] = ts.inner
		}
		dataBytes, _ := json.Marshal(payload)
		hash := sha256.Sum256(dataBytes)
		rr, ss, _ := ecdsa.Sign(rand.Reader, ts.priv, hash[:])
		rBytes, sBytes := rr.Bytes(), ss.Bytes()
		sig := make([]byte, 64)
		copy(sig[32-len(rBytes):32], rBytes)
		copy(sig[64-len(sBytes):64], sBytes)

		env, _ := json.Marshal(map[string]string{
			"data":      base64.StdEncoding.EncodeToString(dataBytes),
			"signature": base64.StdEncoding.EncodeToString(sig),
		})
		_, _ = w.Write(env)
	}))
	return srv, ts
}

func validAppID() string { return "f911842b-5b3d-4c59-b5d1-4adb8f71557b" }

func validClientKeyB64(t *testing.T, pub *ecdsa.PublicKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)
	b64 := base64.StdEncoding.EncodeToString(der)
	require.Len(t, b64, 124, "P-256 SPKI DER must base64-encode to exactly 124 characters")
	return b64
}

// realHWID resolves this test process's actual platform HWID so the fake
// server can echo it back and satisfy the binding check.
func realHWID(t *testing.T) string {
	t.Helper()
	id, err := platform.HWID()
	require.NoError(t, err)
	return id
}

func TestCreateSucceedsWithValidEnvelope(t *testing.T) {
	srv, ts := newTestServer(t)
	defer srv.Close()
	ts.hwid = realHWID(t)
	ts.inner = map[string]any{"dashboard_hostname": "dash.example.com"}

	c, err := Create(context.Background(), validAppID(), validClientKeyB64(t, &ts.priv.PublicKey), WithBaseURL(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "dash.example.com", c.dashboardHost)
}

func TestCreateRejectsShortAppID(t *testing.T) {
	srv, ts := newTestServer(t)
	defer srv.Close()
	requested := false
	srv.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { requested = true })

	_, err := Create(context.Background(), "too-short", validClientKeyB64(t, &ts.priv.PublicKey), WithBaseURL(srv.URL))
	require.Error(t, err)
	tsarErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindInvalidAppID, tsarErr.Kind)
	assert.False(t, requested, "no network call should be made for a malformed app_id")
}

func TestAuthenticateOpensBrowserOnUnauthorized(t *testing.T) {
	srv, ts := newTestServer(t)
	defer srv.Close()
	ts.hwid = realHWID(t)
	ts.inner = map[string]any{"dashboard_hostname": "dash.example.com"}

	c, err := Create(context.Background(), validAppID(), validClientKeyB64(t, &ts.priv.PublicKey), WithBaseURL(srv.URL))
	require.NoError(t, err)

	calls := 0
	origOpen := openBrowserFn
	openBrowserFn = func(url string) error { calls++; return nil }
	defer func() { openBrowserFn = origOpen }()

	ts.status = http.StatusUnauthorized
	_, err = c.Authenticate(context.Background(), true)
	require.Error(t, err)
	tsarErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindUnauthorized, tsarErr.Kind)
	assert.Equal(t, 1, calls)
}

func TestHeartbeatRejectsHWIDMismatch(t *testing.T) {
	srv, ts := newTestServer(t)
	defer srv.Close()
	ts.hwid = realHWID(t)
	ts.inner = map[string]any{"dashboard_hostname": "dash.example.com"}

	c, err := Create(context.Background(), validAppID(), validClientKeyB64(t, &ts.priv.PublicKey), WithBaseURL(srv.URL))
	require.NoError(t, err)

	sessPriv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	sessKeyDER, err := x509.MarshalPKIXPublicKey(&sessPriv.PublicKey)
	require.NoError(t, err)

	u := &User{ID: "user-1", session: "sess-token", sessionKeyDER: sessKeyDER, client: c}
	sessKey, err := parseP256PublicKey(sessKeyDER)
	require.NoError(t, err)
	u.sessionKey = sessKey

	ts.priv = sessPriv
	ts.hwid = "WRONG"

	err = u.Heartbeat(context.Background())
	require.Error(t, err)
	tsarErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindHWIDMismatch, tsarErr.Kind)
}
