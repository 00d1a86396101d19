package tsar

import (
	"net/http"

	"github.com/tsarnet/tsar-go/internal/logger"
)

const defaultBaseURL = "https://tsar.dev/api/client"

// config collects the values Option functions adjust before Create builds
// a Client.
type config struct {
	baseURL          string
	ntpServer        string
	httpClient       *http.Client
	log              logger.Logger
	hostnameOverride string
	binaryHash       string
}

func defaultConfig() *config {
	return &config{
		baseURL: defaultBaseURL,
		log:     logger.NewDefaultLogger(),
	}
}

// Option customizes Client construction.
type Option func(*config)

// WithBaseURL overrides the default https://tsar.dev/api/client endpoint,
// for staging environments or self-hosted deployments.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithNTPServer overrides the default time.cloudflare.com:123 time source.
func WithNTPServer(addr string) Option {
	return func(c *config) { c.ntpServer = addr }
}

// WithHTTPClient overrides the *http.Client used for transport GETs,
// letting callers set their own timeouts, proxies, or transports.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// WithLogger overrides the default structured logger. A nil logger means
// discard: it resolves to logger.NewNop() rather than being stored as-is,
// so Create and Authenticate never need to nil-check c.log before use.
func WithLogger(log logger.Logger) Option {
	return func(c *config) {
		if log == nil {
			log = logger.NewNop()
		}
		c.log = log
	}
}

// WithHostnameOverride supplies the dashboard hostname directly, for
// callers that already know it out of band. Create still calls
// /initialize and still requires its inner data object, but ignores the
// dashboard_hostname it carries.
func WithHostnameOverride(hostname string) Option {
	return func(c *config) { c.hostnameOverride = hostname }
}

// WithBinaryHash attaches a binary hash to the /initialize request as an
// additional query parameter, so a server implementing a binary allow-list
// can receive it. Nothing in this package produces hash_unauthorized: the
// pipeline never does, and no HTTP status is mapped to it.
func WithBinaryHash(hash string) Option {
	return func(c *config) { c.binaryHash = hash }
}
