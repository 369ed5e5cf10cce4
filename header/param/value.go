package param

import (
	"sort"
	"strings"
)

// Parameter names used with multipart/related Content-type headers.
const (
	Boundary  = "boundary"
	Charset   = "charset"
	Start     = "start"
	StartInfo = "start-info"
	Type      = "type"
)

// Value is a parsed parameterized header field. A Value is immutable; use
// Modify to derive a changed copy.
type Value struct {
	v  string
	ps map[string]string
}

// Parse splits a header field body on semicolons. The first fragment is the
// primary value. Every other fragment must look like key=value; fragments
// without an equal sign are skipped. Keys are lower-cased, and values are
// trimmed and have one pair of surrounding double quotes removed.
//
// Parse never fails. Quoted values containing semicolons are not supported,
// which matches what is seen from XOP producers in practice.
func Parse(body string) *Value {
	frags := strings.Split(body, ";")
	pv := &Value{
		v:  strings.TrimSpace(frags[0]),
		ps: make(map[string]string, len(frags)-1),
	}

	for _, frag := range frags[1:] {
		frag = strings.TrimSpace(frag)
		ix := strings.IndexByte(frag, '=')
		if ix < 0 {
			continue
		}

		k := strings.ToLower(strings.TrimSpace(frag[:ix]))
		pv.ps[k] = unquote(strings.TrimSpace(frag[ix+1:]))
	}

	return pv
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return strings.Trim(s, `"`)
}

// New creates a value with the given parameters. The map is copied.
func New(v string, ps map[string]string) *Value {
	cp := make(map[string]string, len(ps))
	for k, pval := range ps {
		cp[strings.ToLower(k)] = pval
	}
	return &Value{v, cp}
}

// Modifier is a change applied by Modify.
type Modifier func(*Value)

// Set is a Modifier that sets the named parameter.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		pv.ps[strings.ToLower(name)] = value
	}
}

// Delete is a Modifier that removes the named parameter.
func Delete(name string) Modifier {
	return func(pv *Value) {
		delete(pv.ps, strings.ToLower(name))
	}
}

// Modify clones pv and applies the changes to the clone.
func Modify(pv *Value, changes ...Modifier) *Value {
	cp := New(pv.v, pv.ps)
	for _, change := range changes {
		change(cp)
	}
	return cp
}

// MediaType returns the primary value, e.g. "multipart/related".
func (pv *Value) MediaType() string {
	return pv.v
}

// Type returns the part of the media type before the slash, or an empty
// string if there is no slash.
func (pv *Value) Type() string {
	if ix := strings.IndexByte(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the part of the media type after the slash, or an empty
// string if there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexByte(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns the parameters. Do not modify the returned map.
func (pv *Value) Parameters() map[string]string {
	return pv.ps
}

// Parameter returns the named parameter or an empty string.
func (pv *Value) Parameter(k string) string {
	return pv.ps[strings.ToLower(k)]
}

// Has reports whether the named parameter is present, even if empty.
func (pv *Value) Has(k string) bool {
	_, ok := pv.ps[strings.ToLower(k)]
	return ok
}

// Boundary returns the boundary parameter.
func (pv *Value) Boundary() string {
	return pv.ps[Boundary]
}

// Start returns the start parameter, the content-id of the root part.
func (pv *Value) Start() string {
	return pv.ps[Start]
}

// StartInfo returns the start-info parameter, the media type of the XML
// carried by an XOP package.
func (pv *Value) StartInfo() string {
	return pv.ps[StartInfo]
}

// RelatedType returns the type parameter of a multipart/related value.
func (pv *Value) RelatedType() string {
	return pv.ps[Type]
}

// Charset returns the charset parameter.
func (pv *Value) Charset() string {
	return pv.ps[Charset]
}

// String serializes the value. Parameters are sorted by name and every
// parameter value is quoted.
func (pv *Value) String() string {
	keys := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(pv.v)
	for _, k := range keys {
		sb.WriteString("; ")
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(pv.ps[k])
		sb.WriteByte('"')
	}
	return sb.String()
}
