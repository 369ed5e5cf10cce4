// Package xop decodes and encodes XOP packages, the multipart/related form of
// XML with binary attachments used by MTOM.
//
// A Reader reads a package from a transport.Response. The start part, which
// holds the XML, is read into memory as soon as the Reader is made. The
// remaining parts come one at a time from NextPart or Walk, and their content
// is read lazily from the underlying stream through a Content:
//
//	r, err := xop.Decode(resp.Header.Get("Content-Type"), resp.Body)
//	if err != nil {
//		return err
//	}
//
//	incs, err := r.Start().Includes()
//	...
//
//	err = r.Walk(func(i int, p *xop.Part) error {
//		_, err := io.Copy(dst, p.Reader())
//		return err
//	})
//
// A Writer produces a package that a Reader will read back part for part.
package xop
