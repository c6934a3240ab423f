// Package transport dispatches a fetch negotiation to a backend keyed by
// URL scheme, via a process-lifetime registry populated by each backend's
// init() through a blank import.
package transport // import "gitkit.dev/transport"

import (
	"io"
	"net/url"
	"sync"

	"gitkit.dev/errors"
)

// Transport negotiates a fetch against a remote repository URL in two
// exchanges: Discover fetches the reference advertisement, and Negotiate
// sends the upload-pack request body.
type Transport interface {
	// Discover performs the reference-discovery exchange (GET
	// info/refs?service=git-upload-pack for HTTP) and returns its raw
	// response body.
	Discover(u *url.URL) (io.ReadCloser, error)

	// Negotiate posts the upload-pack v2 request body and returns the
	// raw response body (framed lines followed by the pack container).
	Negotiate(u *url.URL, body []byte) (io.ReadCloser, error)
}

var (
	mu       sync.RWMutex
	registry = map[string]Transport{}
)

// Register installs t as the backend for scheme. Called from each
// backend's init().
func Register(scheme string, t Transport) {
	mu.Lock()
	defer mu.Unlock()
	registry[scheme] = t
}

// Dispatch resolves the transport registered for rawURL's scheme.
func Dispatch(rawURL string) (Transport, *url.URL, error) {
	const op = "transport.Dispatch"
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, errors.E(op, rawURL, errors.InvalidInput, err)
	}

	mu.RLock()
	t, ok := registry[u.Scheme]
	mu.RUnlock()
	if !ok {
		return nil, nil, errors.E(op, rawURL, errors.UnsupportedScheme, errors.Str(u.Scheme))
	}
	return t, u, nil
}
