package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-xop/header/field"
)

func TestParseLines(t *testing.T) {
	t.Parallel()

	lb := []byte("\r\n")

	lines, err := field.ParseLines([]byte("Content-ID: <a>\r\nContent-Type: text/xml\r\n"), lb)
	assert.NoError(t, err)
	assert.Equal(t, field.Lines{
		[]byte("Content-ID: <a>\r\n"),
		[]byte("Content-Type: text/xml\r\n"),
	}, lines)

	// folded continuation lines stay with their field
	lines, err = field.ParseLines([]byte("Content-Type: multipart/related;\r\n\ttype=\"text/xml\"\r\nX: y"), lb)
	assert.NoError(t, err)
	assert.Equal(t, field.Lines{
		[]byte("Content-Type: multipart/related;\r\n\ttype=\"text/xml\"\r\n"),
		[]byte("X: y"),
	}, lines)

	// junk at the start is skipped but reported
	lines, err = field.ParseLines([]byte(" start\r\njunk\r\nContent-ID: <b>\r\n"), lb)
	var badStart *field.BadStartError
	require.ErrorAs(t, err, &badStart)
	assert.Equal(t, []byte(" start\r\njunk\r\n"), badStart.BadStart)
	assert.Equal(t, field.Lines{[]byte("Content-ID: <b>\r\n")}, lines)

	lines, err = field.ParseLines(nil, lb)
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestParse(t *testing.T) {
	t.Parallel()

	f := field.Parse([]byte("Content-ID: <att1>\r\n"), []byte("\r\n"))
	require.NotNil(t, f.Raw)
	assert.Equal(t, "Content-ID", f.Name())
	assert.Equal(t, "<att1>", f.Body())
	assert.True(t, f.Is("content-id"))
	assert.Equal(t, "Content-ID", f.Raw.Name())
	assert.Equal(t, " <att1>", f.Raw.Body())
	assert.Equal(t, "Content-ID: <att1>", f.String())

	f = field.Parse([]byte("Content-Description: =?utf-8?b?4pmg4pmj4pml4pmm?=\n"), []byte("\n"))
	assert.Equal(t, "♠♣♥♦", f.Body())
	assert.Equal(t, " =?utf-8?b?4pmg4pmj4pml4pmm?=", f.Raw.Body())

	f = field.Parse([]byte("Content-Type: application/xop+xml;\r\n charset=UTF-8"), []byte("\r\n"))
	assert.Equal(t, "application/xop+xml; charset=UTF-8", f.Body())

	f = field.Parse([]byte("Lonely"), []byte("\n"))
	assert.Equal(t, "Lonely", f.Name())
	assert.Equal(t, "", f.Body())
	assert.Equal(t, "", f.Raw.Body())
}

func TestNew(t *testing.T) {
	t.Parallel()

	f := field.New("Content-ID", "<x@y>")
	assert.Nil(t, f.Raw)
	assert.Equal(t, "Content-ID: <x@y>", f.String())
	assert.Equal(t, []byte("Content-ID: <x@y>"), f.Bytes())
}
