package field

import (
	"bytes"
	"strings"
)

// BadStartError is returned when the header block begins with lines that do
// not look like header fields. Those lines are kept in the error and left out
// of the parsed result.
type BadStartError struct {
	BadStart []byte
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line is the unparsed content of one header field, including any folded
// continuation lines.
type Line []byte

// Lines is zero or more unparsed header fields.
type Lines []Line

// ParseLines splits a header block into field lines using lb as the line
// break. A line starting with a space or tab, or a line with no colon, is
// treated as a continuation of the previous field. Such lines at the very
// start have nothing to continue; they are skipped and reported with a
// *BadStartError alongside the lines that were parsed.
func ParseLines(m, lb []byte) (Lines, error) {
	h := make(Lines, 0, len(m)/40+1)
	var bad *BadStartError
	for _, line := range bytes.SplitAfter(m, lb) {
		if len(line) == 0 {
			break
		}

		if isContinuation(line) {
			if len(h) == 0 {
				if bad == nil {
					bad = &BadStartError{}
				}
				bad.BadStart = append(bad.BadStart, line...)
				continue
			}

			h[len(h)-1] = append(h[len(h)-1], line...)
			continue
		}

		h = append(h, line)
	}

	if bad != nil {
		return h, bad
	}
	return h, nil
}

func isContinuation(line []byte) bool {
	return line[0] == ' ' || line[0] == '\t' || !bytes.Contains(line, []byte{':'})
}

// Parse builds a Field from a single field line. The name is everything
// before the first colon and the body everything after it, unfolded, trimmed
// and with any RFC 2047 encoded words decoded. A body that fails to decode is
// kept as-is.
func Parse(f Line, lb []byte) *Field {
	raw := bytes.TrimRight(f, string(lb))

	ix := bytes.IndexByte(raw, ':')
	bodyStart := ix + 1
	if ix < 0 {
		ix = len(raw)
		bodyStart = ix
	}

	name := strings.TrimSpace(string(Unfold(raw[:ix])))
	body := strings.TrimSpace(string(Unfold(raw[bodyStart:])))
	if dec, err := Decode(body); err == nil {
		body = dec
	}

	return &Field{
		name: name,
		body: body,
		Raw:  &Raw{field: raw, colon: ix},
	}
}

// Unfold removes the line breaks from a folded value. The whitespace that
// starts each continuation line is kept.
func Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if b != '\r' && b != '\n' {
			uf = append(uf, b)
		}
	}
	return uf
}
