package xop

import (
	"errors"
	"fmt"
)

// Errors returned while decoding.
var (
	// ErrNotMultipartRelated means the Content-type is not multipart/related.
	ErrNotMultipartRelated = errors.New("not multipart/related")

	// ErrNotXOP means the type parameter is not application/xop+xml.
	ErrNotXOP = errors.New("not application/xop+xml")

	// ErrMissingBoundary means the Content-type has no boundary parameter.
	ErrMissingBoundary = errors.New("missing boundary parameter")

	// ErrMissingStart means the Content-type has no start parameter.
	ErrMissingStart = errors.New("missing start parameter")

	// ErrNoStartPart is returned by NewReader when the body ends before the
	// first part begins.
	ErrNoStartPart = errors.New("message contains no parts")

	// ErrLargeStart is returned by NewReader when the start part is longer
	// than the WithMaxStartLength option allows.
	ErrLargeStart = errors.New("start part exceeds the maximum length")

	// ErrTruncatedStream is wrapped by TruncatedStreamError.
	ErrTruncatedStream = errors.New("stream ended while reading part headers")

	// ErrMalformedHeader is wrapped by MalformedHeaderError.
	ErrMalformedHeader = errors.New("malformed part header")

	// ErrUndrainedPart is returned by NextPart under WithStrictDrain when the
	// previous part still has unread content.
	ErrUndrainedPart = errors.New("previous part was not fully read")

	// ErrEmptyContentID is returned by ValidateContentID for an empty id.
	ErrEmptyContentID = errors.New("empty content-id")

	// ErrWriterClosed is returned when writing to a closed Writer.
	ErrWriterClosed = errors.New("xop writer is closed")

	// ErrStalePart is returned when writing to a part after the next part
	// has been created.
	ErrStalePart = errors.New("part is no longer the current part")
)

// FormatError reports a response whose Content-type cannot be decoded as an
// XOP package. Err is one of ErrNotMultipartRelated, ErrNotXOP,
// ErrMissingBoundary or ErrMissingStart.
type FormatError struct {
	ContentType string
	Err         error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid XOP Content-type %q: %v", e.ContentType, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// TruncatedStreamError reports that the body ended in the middle of a part's
// header block.
type TruncatedStreamError struct {
	Part        int // index of the part being read
	HeaderLines int // header lines read before the end
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("part %d: %v after %d header lines", e.Part, ErrTruncatedStream, e.HeaderLines)
}

func (e *TruncatedStreamError) Unwrap() error {
	return ErrTruncatedStream
}

// MalformedHeaderError reports header lines that could not be parsed as
// fields. It is only returned when WithStrictHeaders is set; otherwise those
// lines are dropped.
type MalformedHeaderError struct {
	Part     int
	BadStart []byte
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("part %d: %v: unexpected text %q", e.Part, ErrMalformedHeader, e.BadStart)
}

func (e *MalformedHeaderError) Unwrap() error {
	return ErrMalformedHeader
}
