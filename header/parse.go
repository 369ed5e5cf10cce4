package header

import (
	"errors"

	"github.com/zostay/go-xop/header/field"
)

// Parse parses a header block using the given line break. The whole input is
// taken to be the header; it should not include the blank line that ends it.
//
// If the block starts with lines that are not header fields, those lines are
// dropped and the header is returned together with a *field.BadStartError.
// That error is recoverable: the returned header is complete apart from the
// dropped lines.
func Parse(m []byte, lb Break) (*Header, error) {
	lines, err := field.ParseLines(m, lb.Bytes())

	var badStart *field.BadStartError
	var finalErr error
	if errors.As(err, &badStart) {
		finalErr = badStart
	} else if err != nil {
		return nil, err
	}

	fields := make([]*field.Field, len(lines))
	for i, line := range lines {
		fields[i] = field.Parse(line, lb.Bytes())
	}

	return &Header{lbr: lb, fields: fields}, finalErr
}
