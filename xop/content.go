package xop

import (
	"errors"
	"io"
	"log/slog"
)

// Content is the lazily read body of one part. It reads lines from the shared
// cursor only as they are needed and stops at the next boundary line, which
// it pushes back for the Reader to find.
//
// Line breaks between lines are restored using the envelope's break. The
// break right before the boundary belongs to the boundary and is never
// returned.
//
// A Content can be read only once. After the boundary has been seen every
// read reports io.EOF; running out is never an error.
type Content struct {
	cursor *lineCursor
	delim  delimiter
	lbr    string
	logger *slog.Logger

	buf       string
	pos       int
	started   bool
	exhausted bool
	err       error
	read      int64
}

func newContent(cursor *lineCursor, delim delimiter, lbr string, logger *slog.Logger) *Content {
	return &Content{
		cursor: cursor,
		delim:  delim,
		lbr:    lbr,
		logger: logger,
	}
}

// fill makes sure there is unread data in buf. It returns io.EOF once the
// boundary or the end of the stream has been reached, or the sticky transport
// error.
func (c *Content) fill() error {
	for c.pos >= len(c.buf) {
		if c.exhausted {
			return io.EOF
		}

		if c.err != nil {
			return c.err
		}

		line, err := c.cursor.pull()
		if errors.Is(err, io.EOF) {
			c.logger.Debug("stream ended inside part content")
			c.exhausted = true
			return io.EOF
		} else if err != nil {
			c.err = err
			return err
		}

		if c.delim.match(line) != notBoundary {
			c.logger.Debug("content reached boundary", "read", c.read)
			c.cursor.pushBack(line)
			c.exhausted = true
			return io.EOF
		}

		if c.started {
			c.buf = c.lbr + line
		} else {
			c.buf = line
			c.started = true
		}
		c.pos = 0
	}
	return nil
}

// ReadByte returns the next byte of content or io.EOF.
func (c *Content) ReadByte() (byte, error) {
	if err := c.fill(); err != nil {
		return 0, err
	}

	b := c.buf[c.pos]
	c.pos++
	c.read++
	return b, nil
}

// Read implements io.Reader. It returns at most the rest of one line per
// call so that it never waits on the transport for more than it needs.
func (c *Content) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if err := c.fill(); err != nil {
		return 0, err
	}

	n := copy(p, c.buf[c.pos:])
	c.pos += n
	c.read += int64(n)
	return n, nil
}

// Next reads up to n bytes. A negative n reads everything that is left and
// zero reads nothing. Reaching the end of the content is not an error: Next
// returns whatever it collected, which may be empty. Only a transport failure
// is returned as an error, along with the bytes read before it.
func (c *Content) Next(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}

	out := []byte{}
	for n < 0 || len(out) < n {
		if err := c.fill(); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return out, err
		}

		chunk := c.buf[c.pos:]
		if want := n - len(out); n > 0 && len(chunk) > want {
			chunk = chunk[:want]
		}

		out = append(out, chunk...)
		c.pos += len(chunk)
		c.read += int64(len(chunk))
	}

	return out, nil
}

// WriteTo writes the rest of the content to w.
func (c *Content) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for {
		if err := c.fill(); errors.Is(err, io.EOF) {
			return total, nil
		} else if err != nil {
			return total, err
		}

		n, err := io.WriteString(w, c.buf[c.pos:])
		c.pos += n
		c.read += int64(n)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
}

// Drain discards whatever content is left and returns how much that was.
func (c *Content) Drain() (int64, error) {
	return c.WriteTo(io.Discard)
}

// Remaining reports whether any content is left to read. It may have to pull
// a line from the transport to find out.
func (c *Content) Remaining() (bool, error) {
	err := c.fill()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	return err == nil, err
}

// Exhausted reports whether the end of the content has been reached.
func (c *Content) Exhausted() bool {
	return c.exhausted && c.pos >= len(c.buf)
}

// BytesRead returns how many bytes have been returned to readers so far,
// including bytes discarded by Drain.
func (c *Content) BytesRead() int64 {
	return c.read
}
