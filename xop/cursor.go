package xop

import (
	"context"
	"log/slog"
	"strings"

	"github.com/zostay/go-xop/transport"
)

// previewLength is how much of each line is logged at debug level.
const previewLength = 50

// lineCursor is the one cursor over the body's lines. The Reader and every
// Content share it. Lines that were read too early are pushed back and come
// out of pull again, most recently pushed first.
type lineCursor struct {
	src     transport.LineSource
	pending []string
	logger  *slog.Logger
}

func newLineCursor(src transport.LineSource, logger *slog.Logger) *lineCursor {
	return &lineCursor{src: src, logger: logger}
}

// pull returns the next line. Pushed back lines are returned before anything
// new is read from the source.
func (c *lineCursor) pull() (string, error) {
	if n := len(c.pending); n > 0 {
		line := c.pending[n-1]
		c.pending = c.pending[:n-1]
		return line, nil
	}

	line, err := c.src.Next()
	if err != nil {
		return "", err
	}

	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("read line", "line", preview(line))
	}

	return line, nil
}

// pushBack un-reads lines so that the next pull returns lines[0], the one
// after that lines[1] and so on.
func (c *lineCursor) pushBack(lines ...string) {
	for i := len(lines) - 1; i >= 0; i-- {
		c.pending = append(c.pending, lines[i])
	}
}

func preview(line string) string {
	if len(line) > previewLength {
		return line[:previewLength] + "..."
	}
	return line
}

type boundaryKind int

const (
	notBoundary boundaryKind = iota
	partBoundary
	closeBoundary
)

// delimiter is the boundary as it appears on the wire, "--" + boundary.
type delimiter string

func newDelimiter(boundary string) delimiter {
	return delimiter("--" + boundary)
}

// match classifies a line. A boundary line is the delimiter followed by
// nothing but optional trailing spaces or tabs. A close delimiter has "--"
// right after the delimiter.
func (d delimiter) match(line string) boundaryKind {
	if !strings.HasPrefix(line, string(d)) {
		return notBoundary
	}

	rest := line[len(d):]
	if strings.HasPrefix(rest, "--") {
		if isBlank(rest[2:]) {
			return closeBoundary
		}
		return notBoundary
	}

	if isBlank(rest) {
		return partBoundary
	}

	return notBoundary
}

func isBlank(s string) bool {
	return strings.TrimRight(s, " \t") == ""
}
