package header

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/zostay/go-xop/header/field"
	"github.com/zostay/go-xop/header/param"
)

// Errors returned by Header getters.
var (
	// ErrNoSuchField is returned when the named field is not present.
	ErrNoSuchField = errors.New("no such header field")

	// ErrManyFields is returned along with the first value when the named
	// field is present more than once.
	ErrManyFields = errors.New("many header fields found")
)

// Names of the fields that matter to XOP parts.
const (
	ContentDescription      = "Content-Description"
	ContentDisposition      = "Content-Disposition"
	ContentID               = "Content-ID"
	ContentLocation         = "Content-Location"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
)

// UnixDateWithEarlyYear is a date layout seen in the wild that the other
// parsers reject.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// Header is an ordered list of fields with case-insensitive lookup. The zero
// value is an empty header using CRLF line breaks.
type Header struct {
	lbr    Break
	fields []*field.Field
}

// Break returns the line break used when writing the header.
func (h *Header) Break() Break {
	if h.lbr == "" {
		return CRLF
	}
	return h.lbr
}

// SetBreak changes the line break used when writing the header.
func (h *Header) SetBreak(lbr Break) {
	h.lbr = lbr
}

// Len returns the number of fields.
func (h *Header) Len() int {
	return len(h.fields)
}

// GetField returns the nth field or nil.
func (h *Header) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// ListFields returns a copy of the list of fields.
func (h *Header) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// GetAllFieldsNamed returns every field with the given name.
func (h *Header) GetAllFieldsNamed(name string) []*field.Field {
	var fs []*field.Field
	for _, f := range h.fields {
		if f.Is(name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// Get returns the body of the named field. If the field is missing, it
// returns ErrNoSuchField. If there are several, it returns the first body and
// ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return "", ErrNoSuchField
	}

	if len(fs) > 1 {
		return fs[0].Body(), ErrManyFields
	}

	return fs[0].Body(), nil
}

// GetAll returns the bodies of every field with the given name.
func (h *Header) GetAll(name string) []string {
	fs := h.GetAllFieldsNamed(name)
	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}
	return bs
}

// Lookup returns the first body for the named field and whether it exists.
func (h *Header) Lookup(name string) (string, bool) {
	for _, f := range h.fields {
		if f.Is(name) {
			return f.Body(), true
		}
	}
	return "", false
}

// Add appends a new field.
func (h *Header) Add(name, body string) {
	h.fields = append(h.fields, field.New(name, body))
}

// Set replaces the first field with the given name and removes the rest. If
// there is no such field, one is appended.
func (h *Header) Set(name, body string) {
	replaced := false
	fields := h.fields[:0]
	for _, f := range h.fields {
		if !f.Is(name) {
			fields = append(fields, f)
			continue
		}

		if !replaced {
			fields = append(fields, field.New(f.Name(), body))
			replaced = true
		}
	}
	h.fields = fields

	if !replaced {
		h.Add(name, body)
	}
}

// Delete removes every field with the given name.
func (h *Header) Delete(name string) {
	fields := h.fields[:0]
	for _, f := range h.fields {
		if !f.Is(name) {
			fields = append(fields, f)
		}
	}
	h.fields = fields
}

// GetContentID returns the Content-ID field exactly as given, angle brackets
// included.
func (h *Header) GetContentID() (string, error) {
	return h.Get(ContentID)
}

// SetContentID sets the Content-ID field, adding angle brackets when missing.
func (h *Header) SetContentID(id string) {
	if !strings.HasPrefix(id, "<") {
		id = "<" + id + ">"
	}
	h.Set(ContentID, id)
}

// GetContentType parses the Content-Type field.
func (h *Header) GetContentType() (*param.Value, error) {
	body, err := h.Get(ContentType)
	if err != nil && !errors.Is(err, ErrManyFields) {
		return nil, err
	}
	return param.Parse(body), nil
}

// GetMediaType returns the media type of the Content-Type field without its
// parameters.
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	return pv.MediaType(), nil
}

// SetMediaType sets the Content-Type field to the given media type.
func (h *Header) SetMediaType(mt string) {
	h.Set(ContentType, mt)
}

// GetTransferEncoding returns the Content-Transfer-Encoding field. This
// package never decodes it.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.Get(ContentTransferEncoding)
}

// ParseTime parses a date field body. RFC 5322 is tried first, then a broad
// set of formats.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime parses the named field as a date.
func (h *Header) GetTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(body)
}

// WriteTo writes each field followed by the line break, then the blank line
// that ends the header.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	lbr := h.Break().String()

	var total int64
	for _, f := range h.fields {
		n, err := io.WriteString(w, f.String()+lbr)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	n, err := io.WriteString(w, lbr)
	total += int64(n)
	return total, err
}
