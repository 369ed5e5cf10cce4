package xop

import (
	"errors"
	"io"
)

// PartWalker is a function called for each part with the part's index.
type PartWalker func(i int, p *Part) error

// Walk calls fn for each part of the message in order. If nothing after the
// start part has been read yet, fn first sees the start part at index 0 with
// its Body already filled in; otherwise the walk resumes with the next part.
//
// Each part's content is drained after fn returns, so fn may read as much of
// it as it likes. A failure while draining is logged and does not replace the
// result of fn. If fn returns an error, the walk stops and that error is
// returned. Reaching the end of the message is not an error.
func (r *Reader) Walk(fn PartWalker) error {
	if r.start != nil && r.current == r.start {
		err := fn(r.start.Index, r.start)
		r.release(r.start)
		if err != nil {
			return err
		}
	}

	for {
		p, err := r.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		err = fn(p.Index, p)
		r.release(p)
		if err != nil {
			return err
		}
	}
}
