package transport

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http2"

	"gitkit.dev/config"
	"gitkit.dev/errors"
)

const uploadPackPath = "/git-upload-pack"

// HTTPTransport backs the "http" and "https" schemes. It wraps a
// *http.Client and builds request headers explicitly;
// golang.org/x/net/http2 is wired into the underlying *http.Transport to
// force connection reuse across the info/refs and upload-pack round trips.
type HTTPTransport struct {
	Client *http.Client
}

func init() {
	tr := &http.Transport{}
	// Best-effort: the error ConfigureTransport can return is ignored;
	// the transport keeps working over HTTP/1.1 if HTTP/2 setup fails.
	_ = http2.ConfigureTransport(tr)

	h := &HTTPTransport{Client: &http.Client{Transport: tr}}
	Register("http", h)
	Register("https", h)
}

func baseURL(u *url.URL) string {
	s := u.String()
	return strings.TrimSuffix(s, uploadPackPath)
}

// Discover issues GET <base>/info/refs?service=git-upload-pack.
func (h *HTTPTransport) Discover(u *url.URL) (io.ReadCloser, error) {
	const op = "transport.HTTPTransport.Discover"
	reqURL := baseURL(u) + "/info/refs?service=git-upload-pack"

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.E(op, reqURL, err)
	}
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("git-protocol", "version="+config.ProtocolVersion)

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, errors.E(op, reqURL, errors.TransportFailure, err)
	}
	if resp.StatusCode/100 != 2 {
		resp.Body.Close()
		return nil, errors.E(op, reqURL, errors.TransportFailure, errors.Str(resp.Status))
	}
	return resp.Body, nil
}

// Negotiate issues POST <base>/git-upload-pack with the v2 fetch request
// body.
func (h *HTTPTransport) Negotiate(u *url.URL, body []byte) (io.ReadCloser, error) {
	const op = "transport.HTTPTransport.Negotiate"
	reqURL := baseURL(u) + uploadPackPath

	req, err := http.NewRequest(http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.E(op, reqURL, err)
	}
	req.Header.Set("Content-Type", "application/x-git-upload-pack-request")
	req.Header.Set("Accept", "application/x-git-upload-pack-result")
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("git-protocol", "version="+config.ProtocolVersion)

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, errors.E(op, reqURL, errors.TransportFailure, err)
	}
	if resp.StatusCode/100 != 2 {
		resp.Body.Close()
		return nil, errors.E(op, reqURL, errors.TransportFailure, errors.Str(resp.Status))
	}
	return resp.Body, nil
}
