package xop_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-xop/xop"
)

const infoset = `<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"
    xmlns:m="http://example.org/stuff">
  <soap:Body>
    <m:data>
      <m:photo><xop:Include xmlns:xop="http://www.w3.org/2004/08/xop/include" href="cid:photo%40example.org"/></m:photo>
      <m:sig><inc:Include xmlns:inc="http://www.w3.org/2004/08/xop/include" href="cid:sig@example.org"/></m:sig>
      <m:other><Include href="cid:ignored@example.org"/></m:other>
    </m:data>
  </soap:Body>
</soap:Envelope>`

func TestIncludes(t *testing.T) {
	t.Parallel()

	incs, err := xop.Includes(strings.NewReader(infoset))
	require.NoError(t, err)
	assert.Equal(t, []xop.Include{
		{Href: "cid:photo%40example.org", ContentID: "photo@example.org", Parent: "photo"},
		{Href: "cid:sig@example.org", ContentID: "sig@example.org", Parent: "sig"},
	}, incs)
}

func TestIncludes_Errors(t *testing.T) {
	t.Parallel()

	_, err := xop.Includes(strings.NewReader("<a"))
	assert.Error(t, err)

	incs, err := xop.Includes(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, incs)
}

func TestPart_Includes(t *testing.T) {
	t.Parallel()

	body := "--abc\r\n" +
		"content-id: <root>\r\n" +
		"\r\n" +
		strings.ReplaceAll(infoset, "\n", "\r\n") + "\r\n" +
		"--abc\r\n" +
		"\r\n"

	r, err := xop.Decode(xopContentType, strings.NewReader(body))
	require.NoError(t, err)

	incs, err := r.Start().Includes()
	require.NoError(t, err)
	require.Len(t, incs, 2)
	assert.True(t, xop.SameContentID(incs[0].ContentID, "<photo@example.org>"))
}
