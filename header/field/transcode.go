package field

import (
	"bytes"
	"io"
	"mime"
	"strings"
)

// CharsetDecoder, when set, decodes text in a character set the standard
// library does not know about. The header/encoding package installs one
// backed by golang.org/x/text when it is imported.
var CharsetDecoder func(charset string, b []byte) (string, error)

// charsetReader adapts CharsetDecoder to the mime.WordDecoder hook.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	b, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}

	s, err := CharsetDecoder(charset, b)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader([]byte(s)), nil
}

// Decode turns any MIME encoded words in a field body into plain UTF-8.
// Bodies without encoded words are returned unchanged.
func Decode(body string) (string, error) {
	if !strings.Contains(body, "=?") {
		return body, nil
	}

	dec := &mime.WordDecoder{}
	if CharsetDecoder != nil {
		dec.CharsetReader = charsetReader
	}

	return dec.DecodeHeader(body)
}

// Encode encodes a body as a UTF-8 b-type encoded word when it contains
// characters that cannot appear in a header as-is.
func Encode(body string) string {
	return mime.BEncoding.Encode("utf-8", body)
}
