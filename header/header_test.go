package header_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-xop/header"
	"github.com/zostay/go-xop/header/field"
)

const partHeader = "Content-ID: <att1@example.com>\r\n" +
	"content-type: application/octet-stream\r\n" +
	"Content-Transfer-Encoding: binary\r\n" +
	"X-Dup: one\r\n" +
	"X-Dup: two"

func TestParse(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte(partHeader), header.CRLF)
	require.NoError(t, err)
	assert.Equal(t, 5, h.Len())
	assert.Equal(t, header.CRLF, h.Break())

	cid, err := h.GetContentID()
	assert.NoError(t, err)
	assert.Equal(t, "<att1@example.com>", cid)

	mt, err := h.GetMediaType()
	assert.NoError(t, err)
	assert.Equal(t, "application/octet-stream", mt)

	te, err := h.GetTransferEncoding()
	assert.NoError(t, err)
	assert.Equal(t, "binary", te)

	v, err := h.Get("x-dup")
	assert.ErrorIs(t, err, header.ErrManyFields)
	assert.Equal(t, "one", v)
	assert.Equal(t, []string{"one", "two"}, h.GetAll("X-DUP"))

	_, err = h.Get("Missing")
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	_, ok := h.Lookup("missing")
	assert.False(t, ok)
	v, ok = h.Lookup("CONTENT-ID")
	assert.True(t, ok)
	assert.Equal(t, "<att1@example.com>", v)
}

func TestParse_BadStart(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("garbage\nContent-ID: <x>"), header.LF)
	var badStart *field.BadStartError
	require.ErrorAs(t, err, &badStart)
	require.NotNil(t, h)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, []byte("garbage\n"), badStart.BadStart)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	h, err := header.Parse(nil, header.CRLF)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())

	_, err = h.GetContentID()
	assert.ErrorIs(t, err, header.ErrNoSuchField)
}

func TestHeader_SetDelete(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.Add("X-A", "1")
	h.Add("x-a", "2")
	h.Add("X-B", "3")

	h.Set("X-A", "9")
	assert.Equal(t, []string{"9"}, h.GetAll("x-a"))
	assert.Equal(t, "X-A", h.GetField(0).Name())
	assert.Equal(t, "X-B", h.GetField(1).Name())

	h.SetContentID("root@example.com")
	cid, err := h.GetContentID()
	assert.NoError(t, err)
	assert.Equal(t, "<root@example.com>", cid)

	h.Delete("x-b")
	assert.Equal(t, 2, h.Len())
	assert.Nil(t, h.GetField(5))
	assert.Len(t, h.ListFields(), 2)
}

func TestHeader_WriteTo(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte(partHeader), header.CRLF)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	n, err := h.WriteTo(buf)
	assert.NoError(t, err)
	assert.Equal(t, partHeader+"\r\n\r\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)

	h = &header.Header{}
	h.SetBreak(header.LF)
	h.SetMediaType("text/xml")
	buf.Reset()
	_, err = h.WriteTo(buf)
	assert.NoError(t, err)
	assert.Equal(t, "Content-Type: text/xml\n\n", buf.String())
}

func TestHeader_GetTime(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.Add(header.Date, "Tue, 3 Mar 2020 10:11:12 +0000")
	h.Add("X-Loose", "2020-03-03 10:11:12")
	h.Add("X-Early", "Tue Mar 03 10:11:12 2020 UTC")
	h.Add("X-Bad", "not a date")

	expect := time.Date(2020, 3, 3, 10, 11, 12, 0, time.UTC)

	d, err := h.GetTime(header.Date)
	assert.NoError(t, err)
	assert.True(t, expect.Equal(d))

	d, err = h.GetTime("x-loose")
	assert.NoError(t, err)
	assert.True(t, expect.Equal(d))

	_, err = h.GetTime("X-Early")
	assert.NoError(t, err)

	_, err = h.GetTime("X-Bad")
	assert.Error(t, err)

	_, err = h.GetTime("X-Missing")
	assert.ErrorIs(t, err, header.ErrNoSuchField)
}

func TestBreak(t *testing.T) {
	t.Parallel()

	for _, b := range []header.Break{header.CRLF, header.LF, header.CR} {
		pb, ok := header.ParseBreak(b.Name())
		assert.True(t, ok)
		assert.Equal(t, b, pb)
		assert.Equal(t, []byte(b), b.Bytes())
	}

	_, ok := header.ParseBreak("nope")
	assert.False(t, ok)
	assert.Equal(t, "custom", header.Break("||").Name())
}
