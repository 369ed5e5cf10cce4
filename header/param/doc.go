// Package param provides a tool for dealing with parameterized headers such as
// Content-type. Parsing is deliberately lenient: the Content-type header of a
// multipart/related response is often hand built by SOAP stacks, so fragments
// that are not key=value pairs are skipped rather than rejected.
package param
