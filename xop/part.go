package xop

import (
	"bytes"
	"io"

	"github.com/zostay/go-xop/header"
)

// Part is one MIME part of an XOP package.
//
// The start part (Index 0) is read in full when the Reader is created and its
// content is in Body. Every other part is handed out before any of its content
// has been read; use Content to read it.
type Part struct {
	// Header holds the part's header fields.
	header.Header

	// ContentID is the Content-ID field as given, or empty if there is none.
	ContentID string

	// Index is the position of the part in the message, starting at 0 for
	// the start part.
	Index int

	// Body is the complete content of the start part. It is nil for other
	// parts.
	Body []byte

	content *Content
}

// Content returns the lazy content reader of the part. For the start part it
// is already exhausted; use Body instead.
func (p *Part) Content() *Content {
	return p.content
}

// Reader returns a reader over the part's content, the materialized Body for
// the start part and the lazy Content otherwise.
func (p *Part) Reader() io.Reader {
	if p.Body != nil {
		return bytes.NewReader(p.Body)
	}
	return p.content
}

// IsStart reports whether this is the start part.
func (p *Part) IsStart() bool {
	return p.Index == 0
}

// Is reports whether the part has the given content-id. Angle brackets and a
// cid: prefix are ignored on both sides.
func (p *Part) Is(contentID string) bool {
	return p.ContentID != "" && SameContentID(p.ContentID, contentID)
}
