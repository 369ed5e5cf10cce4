package field

import (
	"fmt"
	"strings"
)

// Field is a single header field. Name and Body return the unfolded, decoded
// values. When the field came from parsed input, Raw holds the original bytes
// so the header can be written back out unchanged.
type Field struct {
	name string
	body string

	// Raw is nil for fields that were constructed rather than parsed.
	Raw *Raw
}

// New returns a field with the given name and body and no raw form.
func New(name, body string) *Field {
	return &Field{name: name, body: body}
}

// Name returns the name of the field.
func (f *Field) Name() string {
	return f.name
}

// Body returns the unfolded and decoded body of the field.
func (f *Field) Body() string {
	return f.body
}

// Is reports whether the field has the given name. Field names are case
// insensitive.
func (f *Field) Is(name string) bool {
	return strings.EqualFold(f.name, name)
}

// String returns the field as it would be written, without a line break. The
// original bytes are used if the field was parsed.
func (f *Field) String() string {
	if f.Raw != nil {
		return f.Raw.String()
	}
	return fmt.Sprintf("%s: %s", f.name, f.body)
}

// Bytes is the same as String, but returns a slice of bytes.
func (f *Field) Bytes() []byte {
	if f.Raw != nil {
		return f.Raw.Bytes()
	}
	return []byte(f.String())
}

// Raw is the original, possibly folded, form of a parsed field. Objects of
// this type are immutable.
type Raw struct {
	field []byte
	colon int
}

// String returns the raw field as a string.
func (r *Raw) String() string {
	return string(r.field)
}

// Bytes returns the raw field.
func (r *Raw) Bytes() []byte {
	return r.field
}

// Name returns the name part of the raw field.
func (r *Raw) Name() string {
	return string(r.field[:r.colon])
}

// Body returns everything after the colon. It may be folded and it keeps any
// leading space.
func (r *Raw) Body() string {
	if r.colon == len(r.field) {
		return ""
	}
	return string(r.field[r.colon+1:])
}
