package idanalyzer

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tsingmao/idanalyzer/internal/logger"
)

// ClientLibrary is sent as the "client" field of every request.
const ClientLibrary = "go-sdk"

// DefaultUserAgent is the User-Agent header sent unless WithUserAgent is used.
const DefaultUserAgent = "idanalyzer-go/" + Version

// Version is the library version.
const Version = "1.0.0"

var errNoAPIKey = errors.New("please provide an API key")

// Option configures the HTTP side of a client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// WithHTTPClient makes the client send requests through hc. Useful for
// custom transports, proxies and TLS settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout bounds every request, including reading the response body.
// Zero means no limit, which is the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// client holds what every API family shares: credentials, the resolved
// endpoint, the error mode and the HTTP transport.
type client struct {
	// apiKey is sent as the "apikey" field of every request.
	apiKey string

	// endpoint is the resolved API base. Action paths are appended to it.
	endpoint string

	// throwAPIError switches action methods to strict mode.
	throwAPIError bool

	// http is the underlying resty client.
	http *resty.Client
}

// newClient validates the credentials and builds the shared transport.
// suffix is appended to the regional hosts only (see resolveEndpoint).
func newClient(apiKey, region, suffix string, opts []Option) (client, error) {
	if apiKey == "" {
		return client{}, invalidArgument("%v", errNoAPIKey)
	}
	endpoint, err := resolveEndpoint(region, suffix)
	if err != nil {
		return client{}, err
	}

	o := options{userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	var r *resty.Client
	if o.httpClient != nil {
		r = resty.NewWithClient(o.httpClient)
	} else {
		r = resty.New()
	}
	r.SetLogger(logger.Sugar()).
		SetHeader("User-Agent", o.userAgent).
		SetHeader("Accept", "application/json")
	if o.timeout > 0 {
		r.SetTimeout(o.timeout)
	}

	return client{
		apiKey:   apiKey,
		endpoint: endpoint,
		http:     r,
	}, nil
}

// ThrowAPIError selects how API-level errors are reported.
//
// When enabled, an action whose response carries a non-empty "error" entry
// returns an *APIError instead of the response. When disabled (the default),
// the response is returned unchanged and Response.Err reports the error.
// HTTP and network failures are returned as errors in both modes.
func (c *client) ThrowAPIError(enabled bool) {
	c.throwAPIError = enabled
}

// Endpoint returns the resolved API base URL.
func (c *client) Endpoint() string {
	return c.endpoint
}
