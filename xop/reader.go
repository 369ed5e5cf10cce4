package xop

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zostay/go-xop/header"
	"github.com/zostay/go-xop/header/field"
	"github.com/zostay/go-xop/header/param"
	"github.com/zostay/go-xop/transport"
)

// Media types checked on the response Content-type.
const (
	MultipartRelated = "multipart/related"
	XOPMediaType     = "application/xop+xml"
)

// DefaultMaxStartLength is the default limit on the size of the start part,
// which is always read into memory.
const DefaultMaxStartLength = 16 << 20

type state int

const (
	stateIdle state = iota
	stateCollectingHeaders
	stateDone
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateCollectingHeaders:
		return "collecting-headers"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Reader decodes a multipart/related XOP response one part at a time.
//
// NewReader reads the start part in full. The other parts are returned by
// NextPart, or passed to a PartWalker by Walk, with their content unread. The
// Reader drains a part's leftover content before it moves on, so a caller may
// read as much or as little of each part as it likes.
//
// A Reader is not safe for concurrent use. Only the content of the most
// recently returned part can be read; it becomes empty once NextPart is called
// again.
type Reader struct {
	// Boundary is the boundary parameter of the Content-type.
	Boundary string

	// StartID is the start parameter, the content-id of the root part.
	StartID string

	// StartInfo is the start-info parameter, if any.
	StartInfo string

	// Break is the line break used to split the body.
	Break header.Break

	resp   transport.Response
	cursor *lineCursor
	delim  delimiter

	state   state
	err     error
	count   int
	start   *Part
	current *Part

	logger         *slog.Logger
	strictHeaders  bool
	strictDrain    bool
	maxStartLength int
}

// Option changes how a Reader decodes.
type Option func(r *Reader)

// WithBreak sets the line break of the body. The default is CRLF.
func WithBreak(lbr header.Break) Option {
	return func(r *Reader) { r.Break = lbr }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) { r.logger = logger }
}

// WithStrictHeaders makes NextPart fail with a *MalformedHeaderError when a
// part's header block starts with text that is not a header field. By default
// such text is logged and dropped.
func WithStrictHeaders() Option {
	return func(r *Reader) { r.strictHeaders = true }
}

// WithStrictDrain makes NextPart fail with ErrUndrainedPart when the previous
// part still has unread content. By default the leftover is discarded. Walk
// drains parts itself and is not affected.
func WithStrictDrain() Option {
	return func(r *Reader) { r.strictDrain = true }
}

// WithMaxStartLength limits the size of the start part. Zero or less removes
// the limit.
func WithMaxStartLength(n int) Option {
	return func(r *Reader) { r.maxStartLength = n }
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NewReader validates the response Content-type and reads the start part.
//
// The Content-type must be multipart/related followed by parameters, with a type parameter of
// application/xop+xml and must have boundary and start parameters, or a
// *FormatError is returned. Parameter fragments that are not key=value pairs
// are ignored.
func NewReader(resp transport.Response, opts ...Option) (*Reader, error) {
	r := &Reader{
		Break:          header.CRLF,
		resp:           resp,
		logger:         discardLogger,
		maxStartLength: DefaultMaxStartLength,
	}

	for _, opt := range opts {
		opt(r)
	}

	ct := resp.Header(header.ContentType)
	pv := param.Parse(ct)
	switch {
	case !strings.EqualFold(pv.MediaType(), MultipartRelated) || !strings.Contains(ct, ";"):
		return nil, &FormatError{ContentType: ct, Err: ErrNotMultipartRelated}
	case !strings.EqualFold(pv.RelatedType(), XOPMediaType):
		return nil, &FormatError{ContentType: ct, Err: ErrNotXOP}
	case pv.Boundary() == "":
		return nil, &FormatError{ContentType: ct, Err: ErrMissingBoundary}
	case pv.Start() == "":
		return nil, &FormatError{ContentType: ct, Err: ErrMissingStart}
	}

	r.Boundary = pv.Boundary()
	r.StartID = pv.Start()
	r.StartInfo = pv.StartInfo()
	r.delim = newDelimiter(r.Boundary)
	r.logger = r.logger.With("boundary", r.Boundary)
	r.cursor = newLineCursor(resp.Lines(r.Break), r.logger)

	if err := ValidateContentID(r.StartID); err != nil {
		r.logger.Debug("start parameter is not a valid msg-id", "start", r.StartID, "error", err)
	}

	if err := r.readStart(); err != nil {
		return nil, err
	}

	return r, nil
}

// Decode is a shortcut for NewReader over a body and its Content-type value.
func Decode(contentType string, body io.Reader, opts ...Option) (*Reader, error) {
	return NewReader(transport.FromReader(contentType, body), opts...)
}

// readStart reads the first part and its whole content.
func (r *Reader) readStart() error {
	p, err := r.nextPart()
	if errors.Is(err, io.EOF) {
		return ErrNoStartPart
	} else if err != nil {
		return err
	}

	want := -1
	if r.maxStartLength > 0 {
		want = r.maxStartLength + 1
	}

	body, err := p.content.Next(want)
	if err != nil {
		return fmt.Errorf("reading start part: %w", err)
	}

	if r.maxStartLength > 0 && len(body) > r.maxStartLength {
		return ErrLargeStart
	}

	if !p.Is(r.StartID) {
		r.logger.Warn("first part is not the declared start part",
			"start", r.StartID, "content-id", p.ContentID)
	}

	p.Body = body
	r.start = p
	r.logger.Debug("read start part", "content-id", p.ContentID, "length", len(body))
	return nil
}

// Start returns the start part with its content already read into Body.
func (r *Reader) Start() *Part {
	return r.start
}

// NextPart returns the next part after the start part. Its content has not
// been read yet. When the message ends, NextPart returns nil and io.EOF, and
// it keeps doing so on every later call.
//
// Any unread content of the previously returned part is discarded first. A
// failure while discarding is logged rather than returned, unless
// WithStrictDrain is set, in which case unread content is an error.
func (r *Reader) NextPart() (*Part, error) {
	if r.err != nil {
		return nil, r.err
	}

	if r.current != nil {
		if r.strictDrain {
			left, err := r.current.content.Remaining()
			if err != nil {
				return nil, err
			}
			if left {
				return nil, fmt.Errorf("%w: part %d", ErrUndrainedPart, r.current.Index)
			}
		}
		r.release(r.current)
	}

	return r.nextPart()
}

// release discards the rest of a part's content. Errors are logged.
func (r *Reader) release(p *Part) {
	if r.current == p {
		r.current = nil
	}

	n, err := p.content.Drain()
	switch {
	case err != nil:
		r.logger.Warn("error flushing part content", "part", p.Index, "error", err)
	case n > 0:
		r.logger.Debug("flushed remaining part content", "part", p.Index, "length", n)
	default:
		r.logger.Debug("part content was fully read", "part", p.Index)
	}
}

// fail records a terminal error.
func (r *Reader) fail(err error) (*Part, error) {
	r.err = err
	r.state = stateDone
	return nil, err
}

// finish enters the terminal state.
func (r *Reader) finish(msg string) (*Part, error) {
	r.logger.Debug(msg, "state", r.state)
	r.state = stateDone
	return nil, io.EOF
}

// nextPart runs the boundary state machine until a part's header block has
// been read.
func (r *Reader) nextPart() (*Part, error) {
	if r.state == stateDone {
		return nil, io.EOF
	}

	var lines []string
	for {
		line, err := r.cursor.pull()
		if errors.Is(err, io.EOF) {
			if r.state == stateCollectingHeaders {
				return r.fail(&TruncatedStreamError{Part: r.count, HeaderLines: len(lines)})
			}
			r.logger.Warn("stream ended without a closing boundary")
			return r.finish("XOP content ends")
		} else if err != nil {
			return r.fail(err)
		}

		switch r.delim.match(line) {
		case closeBoundary:
			return r.finish("XOP content ends at close delimiter")

		case partBoundary:
			next, err := r.cursor.pull()
			if errors.Is(err, io.EOF) {
				return r.finish("XOP content ends at final boundary")
			} else if err != nil {
				return r.fail(err)
			}

			// a boundary followed by a blank line ends the message
			if strings.TrimSpace(next) == "" {
				return r.finish("XOP content ends")
			}

			if r.state == stateCollectingHeaders {
				// the open part is empty; this boundary starts the next one
				r.logger.Debug("ending empty part", "part", r.count)
				r.cursor.pushBack(line, next)
				return r.openPart(lines)
			}

			r.logger.Debug("creating a new part", "part", r.count)
			r.state = stateCollectingHeaders
			r.cursor.pushBack(next)
			continue
		}

		if r.state == stateIdle {
			r.logger.Debug("skipping text outside of a part")
			continue
		}

		if strings.TrimSpace(line) == "" {
			return r.openPart(lines)
		}

		lines = append(lines, line)
	}
}

// openPart parses the collected header lines and returns the new part with a
// Content attached.
func (r *Reader) openPart(lines []string) (*Part, error) {
	block := strings.Join(lines, r.Break.String())
	h, err := header.Parse([]byte(block), r.Break)

	var badStart *field.BadStartError
	if errors.As(err, &badStart) {
		if r.strictHeaders {
			return r.fail(&MalformedHeaderError{Part: r.count, BadStart: badStart.BadStart})
		}
		r.logger.Warn("dropping malformed header lines", "part", r.count, "lines", string(badStart.BadStart))
	} else if err != nil {
		return r.fail(err)
	}

	cid, _ := h.Lookup(header.ContentID)

	p := &Part{
		Header:    *h,
		ContentID: cid,
		Index:     r.count,
		content:   newContent(r.cursor, r.delim, r.Break.String(), r.logger),
	}

	r.count++
	r.state = stateIdle
	r.current = p
	r.logger.Debug("end headers", "part", p.Index, "content-id", cid, "fields", h.Len())
	return p, nil
}

// Close closes the underlying response.
func (r *Reader) Close() error {
	return r.resp.Close()
}
