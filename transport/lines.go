package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/zostay/go-xop/header"
	"github.com/zostay/go-xop/internal/scanner"
)

// DefaultMaxLineLength is the longest line a LineSource accepts unless
// WithMaxLineLength says otherwise. Binary attachments rarely contain the
// delimiter, so a "line" can be much longer than in text protocols.
const DefaultMaxLineLength = 1 << 20

// ErrLineTooLong is returned by LineSource.Next when a line exceeds the
// configured maximum length.
var ErrLineTooLong = errors.New("line exceeds the maximum length")

// LineSource produces the lines of a body in order with the delimiter
// removed. Next returns io.EOF after the last line.
type LineSource interface {
	Next() (string, error)
}

// Option configures how a Response splits its body.
type Option func(*options)

type options struct {
	maxLineLength int
}

func defaultOptions() *options {
	return &options{maxLineLength: DefaultMaxLineLength}
}

// WithMaxLineLength sets the maximum length of a single line.
func WithMaxLineLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineLength = n
		}
	}
}

type scannerLines struct {
	sc  *bufio.Scanner
	err error
}

// NewLineSource splits r on delim.
func NewLineSource(r io.Reader, delim header.Break, opts ...Option) LineSource {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	initial := 4096
	if o.maxLineLength < initial {
		initial = o.maxLineLength
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initial), o.maxLineLength)
	sc.Split(scanner.ScanDelimited(delim.Bytes()))
	return &scannerLines{sc: sc}
}

// Next returns the next line. Errors are sticky.
func (s *scannerLines) Next() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	if s.sc.Scan() {
		return s.sc.Text(), nil
	}

	err := s.sc.Err()
	switch {
	case err == nil:
		s.err = io.EOF
	case errors.Is(err, bufio.ErrTooLong):
		s.err = fmt.Errorf("%w: %v", ErrLineTooLong, err)
	default:
		s.err = err
	}
	return "", s.err
}
