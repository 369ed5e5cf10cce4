package xop

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// XOPNamespace is the namespace of the xop:Include element.
const XOPNamespace = "http://www.w3.org/2004/08/xop/include"

// Include is one xop:Include element found in the start part.
type Include struct {
	// Href is the href attribute as written, usually a cid: URL.
	Href string

	// ContentID is the content-id the href refers to.
	ContentID string

	// Parent is the tag of the element containing the xop:Include, which is
	// the element whose value was optimized out.
	Parent string
}

// Includes parses an XML document and returns every xop:Include element in
// document order.
func Includes(r io.Reader) ([]Include, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing XOP infoset: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	var incs []Include
	var walk func(el *etree.Element) error
	walk = func(el *etree.Element) error {
		if el.Tag == "Include" && el.NamespaceURI() == XOPNamespace {
			href := el.SelectAttrValue("href", "")
			cid, err := ContentIDFromHref(href)
			if err != nil {
				return err
			}

			parent := ""
			if p := el.Parent(); p != nil {
				parent = p.Tag
			}

			incs = append(incs, Include{Href: href, ContentID: cid, Parent: parent})
			return nil
		}

		for _, child := range el.ChildElements() {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}

	return incs, nil
}

// Includes returns the xop:Include elements of the start part.
func (p *Part) Includes() ([]Include, error) {
	return Includes(p.Reader())
}
