package xop

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// NormalizeContentID strips a cid: prefix, surrounding angle brackets and
// surrounding space from a content-id so that the forms used in headers,
// parameters and hrefs compare equal.
func NormalizeContentID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) >= 4 && strings.EqualFold(id[:4], "cid:") {
		id = id[4:]
	}
	id = strings.TrimPrefix(id, "<")
	id = strings.TrimSuffix(id, ">")
	return strings.TrimSpace(id)
}

// SameContentID reports whether two content-ids name the same part.
func SameContentID(a, b string) bool {
	return NormalizeContentID(a) == NormalizeContentID(b)
}

// ContentIDFromHref turns a cid: URL, as used in the href of xop:Include,
// into a bare content-id. The URL is percent-decoded as RFC 2392 requires.
func ContentIDFromHref(href string) (string, error) {
	id := NormalizeContentID(href)
	dec, err := url.PathUnescape(id)
	if err != nil {
		return "", fmt.Errorf("invalid cid URL %q: %w", href, err)
	}
	return dec, nil
}

// ValidateContentID checks that a content-id is an RFC 2822 msg-id, that is
// an addr-spec in angle brackets. The brackets are optional here.
func ValidateContentID(id string) error {
	bare := NormalizeContentID(id)
	if bare == "" {
		return ErrEmptyContentID
	}

	if _, err := addr.ParseEmailAddrSpec(bare); err != nil {
		return fmt.Errorf("content-id %q is not an addr-spec: %w", id, err)
	}

	return nil
}
