package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

// HTTPClientOptions configures the client built by [NewHTTPClient].
type HTTPClientOptions struct {
	// InsecureSkipVerify disables TLS certificate verification. Only set it
	// when the configuration explicitly asks for it.
	InsecureSkipVerify bool

	// Timeout bounds the whole request. Zero means no client-side timeout.
	Timeout time.Duration
}

// NewHTTPClient returns a client with its own transport cloned from
// http.DefaultTransport, so changing TLS settings never leaks into other
// users of the default client.
func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true // #nosec G402 -- opt-in via configuration
	}

	return &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}
}
