// Package encoding teaches header field decoding about every character set
// known to golang.org/x/text/encoding/ianaindex. Importing it for side
// effects is enough:
//
//	import _ "github.com/zostay/go-xop/header/encoding"
//
// Binaries get noticeably larger, which is why this is not done by default.
package encoding

import (
	"fmt"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/go-xop/header/field"
)

func init() {
	field.CharsetDecoder = CharsetDecoder
}

// CharsetDecoder decodes b from the named character set into a UTF-8 string.
func CharsetDecoder(charset string, b []byte) (string, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return "", err
	}

	if e == nil {
		return "", fmt.Errorf("no encoding found for charset %q", charset)
	}

	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
