// Package scanner holds bufio.SplitFunc helpers. The standard bufio.ScanLines
// only knows about "\n" (with an optional "\r"), but an XOP body has to be
// split on whatever line break the envelope declares.
package scanner

import (
	"bufio"
	"bytes"
)

// ScanDelimited returns a bufio.SplitFunc that splits on delim and strips it
// from each token. A final line without a trailing delimiter is returned as
// the last token. An empty delim splits nothing: the whole input is a single
// token.
//
// The delimiter may be several bytes long; a delimiter split across two reads
// is found because the scanner keeps unconsumed data in its buffer.
func ScanDelimited(delim []byte) bufio.SplitFunc {
	d := make([]byte, len(delim))
	copy(d, delim)

	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		if len(d) > 0 {
			if i := bytes.Index(data, d); i >= 0 {
				return i + len(d), data[:i], nil
			}
		}

		if atEOF {
			return len(data), data, nil
		}

		// request more data
		return 0, nil, nil
	}
}
