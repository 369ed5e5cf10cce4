package xop

import (
	"io"

	"github.com/google/uuid"

	"github.com/zostay/go-xop/header"
	"github.com/zostay/go-xop/header/param"
)

// Writer encodes an XOP package as multipart/related. The first part created
// is the start part.
type Writer struct {
	w         io.Writer
	boundary  string
	startID   string
	startInfo string
	lbr       header.Break

	parts  int
	closed bool
}

// WriterOption changes how a Writer encodes.
type WriterOption func(w *Writer)

// WithBoundary sets the boundary instead of generating one.
func WithBoundary(boundary string) WriterOption {
	return func(w *Writer) { w.boundary = boundary }
}

// WithStartID sets the content-id of the start part instead of generating
// one.
func WithStartID(id string) WriterOption {
	return func(w *Writer) { w.startID = id }
}

// WithStartInfo sets the start-info parameter, normally the media type of the
// original XML document, such as application/soap+xml.
func WithStartInfo(info string) WriterOption {
	return func(w *Writer) { w.startInfo = info }
}

// WithWriterBreak sets the line break written. The default is CRLF.
func WithWriterBreak(lbr header.Break) WriterOption {
	return func(w *Writer) { w.lbr = lbr }
}

// GenerateBoundary returns a new random boundary.
func GenerateBoundary() string {
	return "uuid:" + uuid.New().String()
}

// GenerateContentID returns a new random content-id in angle brackets.
func GenerateContentID() string {
	return "<" + uuid.New().String() + "@xop>"
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	xw := &Writer{
		w:   w,
		lbr: header.CRLF,
	}

	for _, opt := range opts {
		opt(xw)
	}

	if xw.boundary == "" {
		xw.boundary = GenerateBoundary()
	}

	if xw.startID == "" {
		xw.startID = GenerateContentID()
	}

	return xw
}

// Boundary returns the boundary.
func (w *Writer) Boundary() string {
	return w.boundary
}

// StartID returns the content-id of the start part.
func (w *Writer) StartID() string {
	return w.startID
}

// ContentType returns the Content-type value to send with the package. If the
// start part was given its own Content-ID, call this after creating it.
func (w *Writer) ContentType() string {
	ps := map[string]string{
		param.Boundary: w.boundary,
		param.Start:    w.startID,
		param.Type:     XOPMediaType,
	}

	if w.startInfo != "" {
		ps[param.StartInfo] = w.startInfo
	}

	return param.New(MultipartRelated, ps).String()
}

// CreatePart writes a boundary and the given header and returns a writer for
// the part's content. The content stays writable until the next call to
// CreatePart or Close.
//
// A part without a Content-ID field is given one: the start id for the first
// part and a generated id for the rest. When the first part has its own
// Content-ID, that becomes the start id.
func (w *Writer) CreatePart(h *header.Header) (io.Writer, error) {
	if w.closed {
		return nil, ErrWriterClosed
	}

	lbr := w.lbr.String()
	out := ""
	if w.parts > 0 {
		out += lbr
	}
	out += "--" + w.boundary + lbr

	cid, hasCID := h.Lookup(header.ContentID)
	switch {
	case !hasCID && w.parts == 0:
		out += header.ContentID + ": " + w.startID + lbr
	case !hasCID:
		out += header.ContentID + ": " + GenerateContentID() + lbr
	case w.parts == 0:
		w.startID = cid
	}

	for _, f := range h.ListFields() {
		out += f.String() + lbr
	}
	out += lbr

	if _, err := io.WriteString(w.w, out); err != nil {
		return nil, err
	}

	w.parts++
	return &partWriter{xw: w, seq: w.parts}, nil
}

// Close writes the final boundary and the blank line that ends the package.
// It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true

	lbr := w.lbr.String()
	out := "--" + w.boundary + lbr + lbr
	if w.parts > 0 {
		out = lbr + out
	}

	_, err := io.WriteString(w.w, out)
	return err
}

type partWriter struct {
	xw  *Writer
	seq int
}

func (p *partWriter) Write(b []byte) (int, error) {
	switch {
	case p.xw.closed:
		return 0, ErrWriterClosed
	case p.seq != p.xw.parts:
		return 0, ErrStalePart
	}
	return p.xw.w.Write(b)
}
