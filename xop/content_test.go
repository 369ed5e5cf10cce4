package xop

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContent(lines ...string) (*Content, *lineCursor) {
	c := newTestCursor(lines...)
	return newContent(c, newDelimiter("abc"), "\r\n", discardLogger), c
}

func TestContent_ReadByte(t *testing.T) {
	t.Parallel()

	ct, cur := newTestContent("ab", "c", "--abc", "after")

	var got []byte
	for {
		b, err := ct.ReadByte()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, b)
	}
	assert.Equal(t, "ab\r\nc", string(got))
	assert.True(t, ct.Exhausted())
	assert.Equal(t, int64(5), ct.BytesRead())

	// exhaustion is sticky
	_, err := ct.ReadByte()
	assert.Equal(t, io.EOF, err)

	// the boundary was handed back to the cursor
	line, err := cur.pull()
	require.NoError(t, err)
	assert.Equal(t, "--abc", line)
}

func TestContent_Next(t *testing.T) {
	t.Parallel()

	ct, _ := newTestContent("HELLO", "WORLD", "--abc--")

	b, err := ct.Next(0)
	assert.NoError(t, err)
	assert.Equal(t, []byte{}, b)
	assert.Equal(t, int64(0), ct.BytesRead())

	b, err = ct.Next(3)
	assert.NoError(t, err)
	assert.Equal(t, "HEL", string(b))

	b, err = ct.Next(5)
	assert.NoError(t, err)
	assert.Equal(t, "LO\r\nW", string(b))
	assert.False(t, ct.Exhausted())

	b, err = ct.Next(100)
	assert.NoError(t, err)
	assert.Equal(t, "ORLD", string(b))
	assert.True(t, ct.Exhausted())

	for i := 0; i < 3; i++ {
		b, err = ct.Next(-1)
		assert.NoError(t, err)
		assert.Empty(t, b)
	}
}

func TestContent_Read(t *testing.T) {
	t.Parallel()

	ct, _ := newTestContent("one", "two", "--abc")

	p := make([]byte, 2)
	n, err := ct.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, "on", string(p[:n]))

	n, err = ct.Read(p[:0])
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	// a read never crosses into the next line
	p = make([]byte, 100)
	n, err = ct.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, "e", string(p[:n]))

	n, err = ct.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, "\r\ntwo", string(p[:n]))

	n, err = ct.Read(p)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)
}

func TestContent_WriteToAndDrain(t *testing.T) {
	t.Parallel()

	ct, _ := newTestContent("one", "", "three", "--abc")

	b, err := ct.Next(2)
	require.NoError(t, err)
	assert.Equal(t, "on", string(b))

	buf := &bytes.Buffer{}
	n, err := ct.WriteTo(buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.Equal(t, "e\r\n\r\nthree", buf.String())

	n, err = ct.Drain()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, int64(12), ct.BytesRead())
}

func TestContent_Remaining(t *testing.T) {
	t.Parallel()

	ct, _ := newTestContent("x", "--abc")

	left, err := ct.Remaining()
	assert.NoError(t, err)
	assert.True(t, left)

	n, err := ct.Drain()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err = ct.Remaining()
	assert.NoError(t, err)
	assert.False(t, left)
}

func TestContent_EndOfStream(t *testing.T) {
	t.Parallel()

	ct, _ := newTestContent("last")

	b, err := ct.Next(-1)
	assert.NoError(t, err)
	assert.Equal(t, "last", string(b))
	assert.True(t, ct.Exhausted())
}

func TestContent_TransportError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	cur := newLineCursor(&sliceLines{lines: []string{"part"}, err: boom}, discardLogger)
	ct := newContent(cur, newDelimiter("abc"), "\r\n", discardLogger)

	b, err := ct.Next(-1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "part", string(b))

	_, err = ct.ReadByte()
	assert.ErrorIs(t, err, boom)

	left, err := ct.Remaining()
	assert.ErrorIs(t, err, boom)
	assert.False(t, left)
	assert.False(t, ct.Exhausted())
}
