package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/zostay/go-xop/header"
)

// Response is what the decoder reads from.
type Response interface {
	// Header returns the named response header; the name is case
	// insensitive. Missing headers return an empty string.
	Header(name string) string

	// Lines returns the body split on delim. The body can only be read
	// once, so every call returns the same LineSource and the delim of the
	// first call wins.
	Lines(delim header.Break) LineSource

	// Close releases the body.
	Close() error
}

type response struct {
	header http.Header
	body   io.ReadCloser
	opts   []Option
	lines  LineSource
}

// FromHTTP adapts an *http.Response. Closing the returned Response closes the
// response body.
func FromHTTP(resp *http.Response, opts ...Option) Response {
	return &response{
		header: resp.Header,
		body:   resp.Body,
		opts:   opts,
	}
}

// FromReader builds a Response from a body and its Content-Type value. If r
// is an io.Closer, Close is passed through.
func FromReader(contentType string, r io.Reader, opts ...Option) Response {
	h := http.Header{}
	h.Set("Content-Type", contentType)

	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}

	return &response{header: h, body: rc, opts: opts}
}

// ReadHTTP reads a complete HTTP response, status line and headers included,
// such as one captured with curl -i.
func ReadHTTP(r io.Reader, opts ...Option) (Response, error) {
	resp, err := http.ReadResponse(bufio.NewReader(r), nil)
	if err != nil {
		return nil, fmt.Errorf("reading HTTP response: %w", err)
	}
	return FromHTTP(resp, opts...), nil
}

// Get fetches url with client, or http.DefaultClient if client is nil. A
// response status outside 2xx is an error.
func Get(ctx context.Context, client *http.Client, url string, opts ...Option) (Response, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "multipart/related, application/xop+xml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	return FromHTTP(resp, opts...), nil
}

// IsURL reports whether s looks like an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (r *response) Header(name string) string {
	return r.header.Get(name)
}

func (r *response) Lines(delim header.Break) LineSource {
	if r.lines == nil {
		r.lines = NewLineSource(r.body, delim, r.opts...)
	}
	return r.lines
}

func (r *response) Close() error {
	return r.body.Close()
}
