package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing the application to extend or customize behaviour
// later without changing call sites.
//
// The client carries a shared cookie jar, so the session cookies set by
// the server on login are resent automatically on subsequent requests.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a new HTTPClient instance
// with a default-configured underlying resty.Client.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
