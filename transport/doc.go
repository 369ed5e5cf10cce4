// Package transport supplies what the XOP decoder needs from an HTTP
// response: a case-insensitive header lookup and a body split into lines on a
// caller chosen delimiter.
//
// Responses can come from a live *http.Response, from a URL fetched with Get,
// from a file holding a complete HTTP response (ReadHTTP), or from any
// io.Reader paired with a Content-Type value (FromReader).
//
// Pulling a line blocks until the underlying reader produces one. There are
// no timeouts here; use the context passed to Get or the http.Client's own
// settings for that.
package transport
